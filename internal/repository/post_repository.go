package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/atelierlabs/planner-api/internal/models"
	"github.com/lib/pq"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	ListByBrand(ctx context.Context, brandID int64) ([]*models.Post, error)
	ListDue(ctx context.Context, now time.Time) ([]*models.Post, error)
	UpdateStatus(ctx context.Context, status string, postID int64) error
	UpdateSchedule(ctx context.Context, postID int64, status string, scheduledAt *time.Time) error
	UpdateContent(ctx context.Context, postID int64, contentText, postType string) error
	Remove(ctx context.Context, id int64) error
	RemoveMany(ctx context.Context, ids []int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, brand_id, type, content_text, COALESCE(media_url, ''), status, scheduled_at, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.BrandID, &post.Type, &post.ContentText, &post.MediaURL, &post.Status, &post.ScheduledAt, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (brand_id, type, content_text, media_url, status, scheduled_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, post.BrandID, post.Type, post.ContentText, post.MediaURL, post.Status, post.ScheduledAt).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, post.BrandID, post.Type, post.ContentText, post.MediaURL, post.Status, post.ScheduledAt).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (r *postRepository) ListByBrand(ctx context.Context, brandID int64) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE brand_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, brandID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *postRepository) ListDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 AND scheduled_at <= $2 ORDER BY scheduled_at`

	rows, err := r.db.QueryContext(ctx, query, models.PostStatusScheduled, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

func collectPosts(rows *sql.Rows) ([]*models.Post, error) {
	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) UpdateStatus(ctx context.Context, status string, postID int64) error {
	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// UpdateSchedule writes both sides of a drag mutation. A nil scheduledAt
// leaves the stored value as it is (drag back to the pool keeps the last
// scheduled time).
func (r *postRepository) UpdateSchedule(ctx context.Context, postID int64, status string, scheduledAt *time.Time) error {
	query := `
		UPDATE posts
		SET status = $1,
			scheduled_at = COALESCE($2, scheduled_at),
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, status, scheduledAt, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateContent(ctx context.Context, postID int64, contentText, postType string) error {
	query := `
		UPDATE posts
		SET content_text = $1,
			type = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, contentText, postType, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// RemoveMany deletes the whole selection in one statement, so a failure
// removes nothing and the action stays retryable.
func (r *postRepository) RemoveMany(ctx context.Context, ids []int64) error {
	query := `DELETE FROM posts WHERE id = ANY($1)`
	_, err := r.db.ExecContext(ctx, query, pq.Array(ids))

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
