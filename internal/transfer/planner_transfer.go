package transfer

import "github.com/atelierlabs/planner-api/internal/models"

// MoveRequest commits a drag gesture. Target is either "pool" or "cell";
// Date (YYYY-MM-DD) and Time (HH:MM) identify the cell for the latter.
type MoveRequest struct {
	PostID int64  `json:"post_id"`
	Target string `json:"target"`
	Date   string `json:"date,omitempty"`
	Time   string `json:"time,omitempty"`
}

type PostUpdate struct {
	PostID      int64  `json:"post_id"`
	ContentText string `json:"content_text"`
	Type        string `json:"type"`
}

type BatchDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

type PublishPostRequest struct {
	PostID int64 `json:"post_id"`
}

type SlotUpdate struct {
	BrandID int64  `json:"brand_id"`
	Time    string `json:"time"`
}

type BrandUpdate struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	InstagramBusinessID string `json:"instagram_business_id"`
	MetaAccessToken     string `json:"meta_access_token"`
}

// PlannerView is the full planner payload: the rolling window, the
// configured slot rows, the bucketed cells and the draft pool.
type PlannerView struct {
	Days   []string                  `json:"days"`
	Slots  []string                  `json:"slots"`
	Cells  map[string][]*models.Post `json:"cells"`
	Drafts []*models.Post            `json:"drafts"`
}
