package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// SettingsRepository is the generic string-keyed configuration bag. The
// planner's time-slot registry is one JSON-encoded entry of it.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM settings WHERE key = $1`
	row := r.db.QueryRowContext(ctx, query, key)

	var value string
	err := row.Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		slog.Info(err.Error())
		return "", false, err
	}

	return value, true, nil
}

func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, key, value, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *settingsRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM settings WHERE key = $1`
	_, err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
