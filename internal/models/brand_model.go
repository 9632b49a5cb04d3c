package models

import "time"

// Brand owns posts. The Instagram credentials are provisioned through the
// CMS; the access token is stored AES-GCM encrypted.
type Brand struct {
	ID                  int64     `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	InstagramBusinessID string    `db:"instagram_business_id" json:"instagram_business_id"`
	MetaAccessToken     string    `db:"meta_access_token" json:"-"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// HasCredentials reports whether both fields required by the publish
// protocol are present. The sweep skips brands that fail this check.
func (b *Brand) HasCredentials() bool {
	return b.InstagramBusinessID != "" && b.MetaAccessToken != ""
}
