package job_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/atelierlabs/planner-api/configs"
	job "github.com/atelierlabs/planner-api/internal/jobs"
	"github.com/atelierlabs/planner-api/internal/models"
	"github.com/atelierlabs/planner-api/pkg/utils"
)

const sweepSecretKey = "0123456789abcdef0123456789abcdef"

type sweepPostRepo struct {
	posts    []*models.Post
	statuses map[int64]string
}

func (r *sweepPostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *sweepPostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	return 0, errors.New("not implemented")
}

func (r *sweepPostRepo) ListByBrand(ctx context.Context, brandID int64) ([]*models.Post, error) {
	return nil, errors.New("not implemented")
}

func (r *sweepPostRepo) ListDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	var due []*models.Post
	for _, p := range r.posts {
		if p.IsDue(now) {
			due = append(due, p)
		}
	}
	return due, nil
}

func (r *sweepPostRepo) UpdateStatus(ctx context.Context, status string, postID int64) error {
	if r.statuses == nil {
		r.statuses = make(map[int64]string)
	}
	r.statuses[postID] = status
	return nil
}

func (r *sweepPostRepo) UpdateSchedule(ctx context.Context, postID int64, status string, scheduledAt *time.Time) error {
	return errors.New("not implemented")
}

func (r *sweepPostRepo) UpdateContent(ctx context.Context, postID int64, contentText, postType string) error {
	return errors.New("not implemented")
}

func (r *sweepPostRepo) Remove(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}

func (r *sweepPostRepo) RemoveMany(ctx context.Context, ids []int64) error {
	return errors.New("not implemented")
}

type sweepBrandRepo struct {
	brands map[int64]*models.Brand
	loads  int
}

func (r *sweepBrandRepo) GetByID(ctx context.Context, id int64) (*models.Brand, bool, error) {
	r.loads++
	b, ok := r.brands[id]
	return b, ok, nil
}

func (r *sweepBrandRepo) List(ctx context.Context) ([]*models.Brand, error) {
	return nil, errors.New("not implemented")
}

func (r *sweepBrandRepo) Create(ctx context.Context, brand *models.Brand) (int64, error) {
	return 0, errors.New("not implemented")
}

func (r *sweepBrandRepo) Update(ctx context.Context, brand *models.Brand) error {
	return errors.New("not implemented")
}

type sweepLogRepo struct {
	entries []*models.PublishLog
}

func (r *sweepLogRepo) Create(ctx context.Context, entry *models.PublishLog) (int64, error) {
	r.entries = append(r.entries, entry)
	return int64(len(r.entries)), nil
}

func (r *sweepLogRepo) ListByPostID(ctx context.Context, postID int64) ([]*models.PublishLog, error) {
	return nil, errors.New("not implemented")
}

// failingInstagram errors for the media URLs it is told to reject.
type failingInstagram struct {
	rejected map[string]string
	nextID   int
}

func (f *failingInstagram) Publish(ctx context.Context, imageURL, caption, businessID, accessToken string) (string, error) {
	if msg, ok := f.rejected[imageURL]; ok {
		return "", errors.New(msg)
	}
	f.nextID++
	return "ig-" + string(rune('a'+f.nextID-1)), nil
}

func duePost(id, brandID int64, mediaURL string) *models.Post {
	at := time.Now().Add(-time.Minute)
	return &models.Post{
		ID:          id,
		BrandID:     brandID,
		Type:        models.PostTypePost,
		ContentText: "caption",
		MediaURL:    mediaURL,
		Status:      models.PostStatusScheduled,
		ScheduledAt: &at,
	}
}

func encryptedBrand(t *testing.T, id int64) *models.Brand {
	t.Helper()
	token, err := utils.Encrypt([]byte("ig-access-token"), []byte(sweepSecretKey))
	require.NoError(t, err)
	return &models.Brand{ID: id, Name: "Atelier", InstagramBusinessID: "17890", MetaAccessToken: token}
}

func TestSweepNoCandidates(t *testing.T) {
	pr := &sweepPostRepo{}
	br := &sweepBrandRepo{brands: map[int64]*models.Brand{}}
	j := job.NewPublishSweepJob(config.Config{SecretKey: sweepSecretKey}, pr, br, &sweepLogRepo{}, &failingInstagram{})

	report, err := j.Sweep(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Zero(t, report.Processed)
	assert.NotNil(t, report.Details)
	assert.Empty(t, report.Details)
}

func TestSweepMixedOutcomes(t *testing.T) {
	pr := &sweepPostRepo{posts: []*models.Post{
		duePost(1, 7, "https://cdn.example.com/ok.jpg"),
		duePost(2, 8, "https://cdn.example.com/orphan.jpg"), // brand without credentials
		duePost(3, 7, "https://cdn.example.com/broken.jpg"),
		duePost(4, 7, "https://cdn.example.com/also-ok.jpg"),
	}}
	br := &sweepBrandRepo{brands: map[int64]*models.Brand{
		7: encryptedBrand(t, 7),
		8: {ID: 8, Name: "Bare"},
	}}
	pl := &sweepLogRepo{}
	ig := &failingInstagram{rejected: map[string]string{
		"https://cdn.example.com/broken.jpg": "instagram container error: Invalid image URL",
	}}

	j := job.NewPublishSweepJob(config.Config{SecretKey: sweepSecretKey}, pr, br, pl, ig)

	report, err := j.Sweep(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Equal(t, 4, report.Processed)
	require.Len(t, report.Details, 4)

	assert.Equal(t, models.OutcomePublished, report.Details[0].Status)
	assert.NotEmpty(t, report.Details[0].IgID)

	assert.Equal(t, models.OutcomeSkipped, report.Details[1].Status)

	assert.Equal(t, models.OutcomeFailed, report.Details[2].Status)
	assert.Contains(t, report.Details[2].Error, "Invalid image URL")

	// one failure never stops the rest of the sweep
	assert.Equal(t, models.OutcomePublished, report.Details[3].Status)

	// only successes flip status
	assert.Equal(t, models.PostStatusPublished, pr.statuses[1])
	assert.Equal(t, models.PostStatusPublished, pr.statuses[4])
	assert.NotContains(t, pr.statuses, int64(2))
	assert.NotContains(t, pr.statuses, int64(3))

	// every candidate leaves a log entry
	assert.Len(t, pl.entries, 4)

	// brands are resolved once per sweep, not once per post
	assert.Equal(t, 2, br.loads)
}

func TestSweepSkipsFuturePosts(t *testing.T) {
	future := time.Now().Add(time.Hour)
	post := duePost(1, 7, "https://cdn.example.com/ok.jpg")
	post.ScheduledAt = &future

	pr := &sweepPostRepo{posts: []*models.Post{post}}
	br := &sweepBrandRepo{brands: map[int64]*models.Brand{7: encryptedBrand(t, 7)}}
	j := job.NewPublishSweepJob(config.Config{SecretKey: sweepSecretKey}, pr, br, &sweepLogRepo{}, &failingInstagram{})

	report, err := j.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Processed)
}
