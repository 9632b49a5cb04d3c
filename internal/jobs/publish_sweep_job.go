package job

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	config "github.com/atelierlabs/planner-api/configs"
	"github.com/atelierlabs/planner-api/internal/models"
	"github.com/atelierlabs/planner-api/internal/repository"
	"github.com/atelierlabs/planner-api/internal/service"
	"github.com/atelierlabs/planner-api/internal/transfer"
	"github.com/atelierlabs/planner-api/pkg/utils"
)

// PublishSweepJob publishes every due scheduled post across all brands.
// Candidates are processed sequentially and every failure is contained at
// the post level: one bad credential set or platform error never stops
// the rest of the sweep.
type PublishSweepJob struct {
	cfg config.Config
	pr  repository.PostRepository
	br  repository.BrandRepository
	pl  repository.PublishLogRepository
	ig  service.InstagramService
}

func NewPublishSweepJob(
	cfg config.Config,
	pr repository.PostRepository,
	br repository.BrandRepository,
	pl repository.PublishLogRepository,
	ig service.InstagramService) *PublishSweepJob {
	return &PublishSweepJob{
		cfg: cfg,
		pr:  pr,
		br:  br,
		pl:  pl,
		ig:  ig,
	}
}

// Run is the cron entry point.
func (j *PublishSweepJob) Run() {
	report, err := j.Sweep(context.Background())
	if err != nil {
		slog.Error(fmt.Sprintf("publish sweep failed: %v", err))
		return
	}
	log.Printf("publish sweep: processed %d posts", report.Processed)
}

// Sweep enumerates the candidates due as of now and returns one outcome
// entry per post.
func (j *PublishSweepJob) Sweep(ctx context.Context) (*transfer.SweepReport, error) {
	posts, err := j.pr.ListDue(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("error listing due posts: %w", err)
	}

	report := &transfer.SweepReport{Success: true, Details: []transfer.SweepOutcome{}}
	brands := make(map[int64]*models.Brand)

	for _, post := range posts {
		report.Details = append(report.Details, j.publishOne(ctx, post, brands))
	}

	report.Processed = len(report.Details)
	return report, nil
}

func (j *PublishSweepJob) publishOne(ctx context.Context, post *models.Post, brands map[int64]*models.Brand) transfer.SweepOutcome {
	brand, ok := brands[post.BrandID]
	if !ok {
		loaded, found, err := j.br.GetByID(ctx, post.BrandID)
		if err != nil || !found {
			loaded = nil
		}
		brand = loaded
		brands[post.BrandID] = brand
	}

	if brand == nil || !brand.HasCredentials() {
		j.record(ctx, post, models.OutcomeSkipped, "", "")
		return transfer.SweepOutcome{ID: post.ID, Status: models.OutcomeSkipped}
	}

	accessToken, err := utils.Decrypt(brand.MetaAccessToken, []byte(j.cfg.SecretKey))
	if err != nil {
		return j.failed(ctx, post, fmt.Errorf("failed to decrypt access token: %w", err))
	}

	mediaID, err := j.ig.Publish(ctx, post.MediaURL, post.ContentText, brand.InstagramBusinessID, accessToken)
	if err != nil {
		return j.failed(ctx, post, err)
	}

	if err := j.pr.UpdateStatus(ctx, models.PostStatusPublished, post.ID); err != nil {
		return j.failed(ctx, post, fmt.Errorf("published but failed to update status: %w", err))
	}

	j.record(ctx, post, models.OutcomePublished, mediaID, "")
	return transfer.SweepOutcome{ID: post.ID, Status: models.OutcomePublished, IgID: mediaID}
}

func (j *PublishSweepJob) failed(ctx context.Context, post *models.Post, err error) transfer.SweepOutcome {
	slog.Error(fmt.Sprintf("failed to publish post %d: %v", post.ID, err))
	j.record(ctx, post, models.OutcomeFailed, "", err.Error())
	return transfer.SweepOutcome{ID: post.ID, Status: models.OutcomeFailed, Error: err.Error()}
}

func (j *PublishSweepJob) record(ctx context.Context, post *models.Post, outcome, remoteID, errMsg string) {
	entry := models.PublishLog{
		PostID:       post.ID,
		BrandID:      post.BrandID,
		Outcome:      outcome,
		RemoteID:     remoteID,
		ErrorMessage: errMsg,
	}
	if _, err := j.pl.Create(ctx, &entry); err != nil {
		slog.Info(fmt.Sprintf("failed to save publish log for post %d: %v", post.ID, err))
	}
}
