package models

import "time"

// PublishLog records one publish attempt, manual or sweep-driven.
type PublishLog struct {
	ID           int64     `db:"id" json:"id"`
	PostID       int64     `db:"post_id" json:"post_id"`
	BrandID      int64     `db:"brand_id" json:"brand_id"`
	Outcome      string    `db:"outcome" json:"outcome"` // published, skipped_no_credentials, failed
	RemoteID     string    `db:"remote_id" json:"remote_id"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const (
	OutcomePublished = "published"
	OutcomeSkipped   = "skipped_no_credentials"
	OutcomeFailed    = "failed"
)
