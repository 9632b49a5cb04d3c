package service_test

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/atelierlabs/planner-api/internal/models"
)

// in-memory stand-ins for the repositories

type fakePostRepo struct {
	posts          map[int64]*models.Post
	nextID         int64
	failRemoveMany bool
	removed        []int64
}

func newFakePostRepo(posts ...*models.Post) *fakePostRepo {
	r := &fakePostRepo{posts: make(map[int64]*models.Post), nextID: 1}
	for _, p := range posts {
		r.posts[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	clone := *post
	return &clone, nil
}

func (r *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	id := r.nextID
	r.nextID++
	clone := *post
	clone.ID = id
	r.posts[id] = &clone
	return id, nil
}

func (r *fakePostRepo) ListByBrand(ctx context.Context, brandID int64) ([]*models.Post, error) {
	var out []*models.Post
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.posts[id]; ok && p.BrandID == brandID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	var out []*models.Post
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.posts[id]; ok && p.IsDue(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) UpdateStatus(ctx context.Context, status string, postID int64) error {
	if p, ok := r.posts[postID]; ok {
		p.Status = status
	}
	return nil
}

func (r *fakePostRepo) UpdateSchedule(ctx context.Context, postID int64, status string, scheduledAt *time.Time) error {
	p, ok := r.posts[postID]
	if !ok {
		return errors.New("not found")
	}
	p.Status = status
	if scheduledAt != nil {
		p.ScheduledAt = scheduledAt
	}
	return nil
}

func (r *fakePostRepo) UpdateContent(ctx context.Context, postID int64, contentText, postType string) error {
	p, ok := r.posts[postID]
	if !ok {
		return errors.New("not found")
	}
	p.ContentText = contentText
	p.Type = postType
	return nil
}

func (r *fakePostRepo) Remove(ctx context.Context, id int64) error {
	delete(r.posts, id)
	r.removed = append(r.removed, id)
	return nil
}

func (r *fakePostRepo) RemoveMany(ctx context.Context, ids []int64) error {
	if r.failRemoveMany {
		return errors.New("store unavailable")
	}
	for _, id := range ids {
		delete(r.posts, id)
		r.removed = append(r.removed, id)
	}
	return nil
}

type fakeBrandRepo struct {
	brands map[int64]*models.Brand
}

func newFakeBrandRepo(brands ...*models.Brand) *fakeBrandRepo {
	r := &fakeBrandRepo{brands: make(map[int64]*models.Brand)}
	for _, b := range brands {
		r.brands[b.ID] = b
	}
	return r
}

func (r *fakeBrandRepo) GetByID(ctx context.Context, id int64) (*models.Brand, bool, error) {
	brand, ok := r.brands[id]
	if !ok {
		return nil, false, nil
	}
	return brand, true, nil
}

func (r *fakeBrandRepo) List(ctx context.Context) ([]*models.Brand, error) {
	var out []*models.Brand
	for _, b := range r.brands {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBrandRepo) Create(ctx context.Context, brand *models.Brand) (int64, error) {
	id := int64(len(r.brands) + 1)
	brand.ID = id
	r.brands[id] = brand
	return id, nil
}

func (r *fakeBrandRepo) Update(ctx context.Context, brand *models.Brand) error {
	r.brands[brand.ID] = brand
	return nil
}

type fakeSettingsRepo struct {
	values map[string]string
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{values: make(map[string]string)}
}

func (r *fakeSettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *fakeSettingsRepo) Set(ctx context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

func (r *fakeSettingsRepo) Delete(ctx context.Context, key string) error {
	delete(r.values, key)
	return nil
}

type fakePublishLogRepo struct {
	entries []*models.PublishLog
}

func (r *fakePublishLogRepo) Create(ctx context.Context, entry *models.PublishLog) (int64, error) {
	r.entries = append(r.entries, entry)
	return int64(len(r.entries)), nil
}

func (r *fakePublishLogRepo) ListByPostID(ctx context.Context, postID int64) ([]*models.PublishLog, error) {
	var out []*models.PublishLog
	for _, e := range r.entries {
		if e.PostID == postID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeInstagram satisfies service.InstagramService with canned outcomes.
type fakeInstagram struct {
	mediaID string
	err     error
	calls   int
}

func (f *fakeInstagram) Publish(ctx context.Context, imageURL, caption, businessID, accessToken string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.mediaID, nil
}
