package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/atelierlabs/planner-api/configs"
	"github.com/atelierlabs/planner-api/internal/models"
	"github.com/atelierlabs/planner-api/internal/repository"
	"github.com/atelierlabs/planner-api/internal/transfer"
	"github.com/atelierlabs/planner-api/pkg/utils"
)

var (
	ErrBrandCredentialsMissing = errors.New("brand credentials missing")
	ErrPostNotFound            = errors.New("post doesn't exist")
	ErrNoMedia                 = errors.New("no media to publish")
	ErrAlreadyPublished        = errors.New("post is already published")
)

// PublishService is the dispatcher in front of the Instagram protocol:
// it resolves brand credentials, runs the two-phase publish and turns the
// outcome into a local status update plus a publish-log entry.
type PublishService interface {
	// PublishByBrand is the raw credential proxy: it publishes the given
	// media without touching any post row.
	PublishByBrand(ctx context.Context, imageURL, caption string, brandID int64) (*transfer.PublishResult, error)
	// PublishPost is the manual "publish now" path for one post.
	PublishPost(ctx context.Context, postID int64) (*transfer.PublishResult, error)
}

type publishService struct {
	cfg config.Config
	pr  repository.PostRepository
	br  repository.BrandRepository
	pl  repository.PublishLogRepository
	ig  InstagramService
}

func NewPublishService(
	cfg config.Config,
	pr repository.PostRepository,
	br repository.BrandRepository,
	pl repository.PublishLogRepository,
	ig InstagramService) PublishService {
	return &publishService{
		cfg: cfg,
		pr:  pr,
		br:  br,
		pl:  pl,
		ig:  ig,
	}
}

// resolveCredentials loads a brand and returns its business ID and the
// decrypted access token.
func (s *publishService) resolveCredentials(ctx context.Context, brandID int64) (string, string, error) {
	brand, ok, err := s.br.GetByID(ctx, brandID)
	if err != nil {
		return "", "", err
	}
	if !ok || !brand.HasCredentials() {
		return "", "", ErrBrandCredentialsMissing
	}

	accessToken, err := utils.Decrypt(brand.MetaAccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return "", "", fmt.Errorf("failed to decrypt access token: %w", err)
	}

	return brand.InstagramBusinessID, accessToken, nil
}

func (s *publishService) PublishByBrand(ctx context.Context, imageURL, caption string, brandID int64) (*transfer.PublishResult, error) {
	businessID, accessToken, err := s.resolveCredentials(ctx, brandID)
	if err != nil {
		return nil, err
	}

	mediaID, err := s.ig.Publish(ctx, imageURL, caption, businessID, accessToken)
	if err != nil {
		return &transfer.PublishResult{Success: false, Error: err.Error()}, nil
	}

	return &transfer.PublishResult{Success: true, ID: mediaID}, nil
}

func (s *publishService) PublishPost(ctx context.Context, postID int64) (*transfer.PublishResult, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Status == models.PostStatusPublished {
		return nil, ErrAlreadyPublished
	}
	if post.MediaURL == "" {
		return nil, ErrNoMedia
	}

	businessID, accessToken, err := s.resolveCredentials(ctx, post.BrandID)
	if err != nil {
		return nil, err
	}

	mediaID, err := s.ig.Publish(ctx, post.MediaURL, post.ContentText, businessID, accessToken)
	if err != nil {
		s.record(ctx, post, models.OutcomeFailed, "", err.Error())
		return &transfer.PublishResult{Success: false, Error: err.Error()}, nil
	}

	if err := s.pr.UpdateStatus(ctx, models.PostStatusPublished, post.ID); err != nil {
		return nil, fmt.Errorf("published on Instagram but failed to update status: %w", err)
	}

	s.record(ctx, post, models.OutcomePublished, mediaID, "")
	return &transfer.PublishResult{Success: true, ID: mediaID}, nil
}

func (s *publishService) record(ctx context.Context, post *models.Post, outcome, remoteID, errMsg string) {
	entry := models.PublishLog{
		PostID:       post.ID,
		BrandID:      post.BrandID,
		Outcome:      outcome,
		RemoteID:     remoteID,
		ErrorMessage: errMsg,
	}
	if _, err := s.pl.Create(ctx, &entry); err != nil {
		slog.Info(fmt.Sprintf("failed to save publish log for post %d: %v", post.ID, err))
	}
}
