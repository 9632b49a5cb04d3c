package transfer

// PublishRequest is the manual publish proxy body. Field names match the
// planner client.
type PublishRequest struct {
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption"`
	BrandID  int64  `json:"brandId"`
}

// PublishResult is the outcome of one two-phase publish. A logical error
// returned by the platform inside a 200 body ends up in Error.
type PublishResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GraphError mirrors the error object the Graph API embeds in an
// otherwise-200 JSON response.
type GraphError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode"`
	FbtraceID    string `json:"fbtrace_id"`
}

// SweepOutcome is one entry of the sweep report. IgID is set for
// published posts, Error for failed ones.
type SweepOutcome struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	IgID   string `json:"ig_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

type SweepReport struct {
	Success   bool           `json:"success"`
	Processed int            `json:"processed"`
	Details   []SweepOutcome `json:"details"`
}
