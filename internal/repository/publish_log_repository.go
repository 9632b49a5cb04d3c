package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/atelierlabs/planner-api/internal/models"
)

type PublishLogRepository interface {
	Create(ctx context.Context, entry *models.PublishLog) (int64, error)
	ListByPostID(ctx context.Context, postID int64) ([]*models.PublishLog, error)
}

type publishLogRepository struct {
	db *sql.DB
}

func NewPublishLogRepository(db *sql.DB) PublishLogRepository {
	return &publishLogRepository{db: db}
}

func (r *publishLogRepository) Create(ctx context.Context, entry *models.PublishLog) (int64, error) {
	query := `
		INSERT INTO publish_log (post_id, brand_id, outcome, remote_id, error_message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, entry.PostID, entry.BrandID, entry.Outcome, entry.RemoteID, entry.ErrorMessage).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *publishLogRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.PublishLog, error) {
	query := `SELECT id, post_id, brand_id, outcome, COALESCE(remote_id, ''), COALESCE(error_message, ''), created_at FROM publish_log WHERE post_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var entries []*models.PublishLog
	for rows.Next() {
		var e models.PublishLog
		err := rows.Scan(&e.ID, &e.PostID, &e.BrandID, &e.Outcome, &e.RemoteID, &e.ErrorMessage, &e.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
