package models

import "time"

type Post struct {
	ID          int64      `db:"id" json:"id"`
	BrandID     int64      `db:"brand_id" json:"brand_id"`
	Type        string     `db:"type" json:"type"` // post, story
	ContentText string     `db:"content_text" json:"content_text"`
	MediaURL    string     `db:"media_url" json:"media_url"`
	Status      string     `db:"status" json:"status"` // draft, scheduled, published
	ScheduledAt *time.Time `db:"scheduled_at" json:"scheduled_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)

const (
	PostTypePost  = "post"
	PostTypeStory = "story"
)

// IsDue reports whether the post is eligible for the publish sweep.
func (p *Post) IsDue(now time.Time) bool {
	return p.Status == PostStatusScheduled && p.ScheduledAt != nil && !p.ScheduledAt.After(now)
}
