package models

import "time"

// Setting is one row of the generic string-keyed configuration bag. The
// planner's time-slot registry lives here as a JSON-encoded list.
type Setting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
