package planner

import (
	"fmt"
	"time"

	"github.com/atelierlabs/planner-api/internal/models"
)

// Window returns the rolling run of days starting at start's local date,
// midnight-normalized.
func Window(start time.Time, days int) []time.Time {
	out := make([]time.Time, 0, days)
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for i := 0; i < days; i++ {
		out = append(out, day.AddDate(0, 0, i))
	}
	return out
}

// CellKey addresses one (day, slot) drop target, e.g. "2024-06-20_18:00".
func CellKey(day time.Time, slot string) string {
	return fmt.Sprintf("%s_%s", day.Format("2006-01-02"), slot)
}

// SlotOf formats a timestamp's time of day as a zero-padded slot string.
func SlotOf(t time.Time) string {
	return t.Format("15:04")
}

// BuildGrid buckets every scheduled post into the cell addressed by its
// own scheduled date and time. Posts whose time matches no configured
// slot still land under their own key; they simply have no visible row
// until the registry includes that time again. Insertion order within a
// cell follows the input order.
func BuildGrid(posts []*models.Post) map[string][]*models.Post {
	cells := make(map[string][]*models.Post)
	for _, p := range posts {
		if p.Status != models.PostStatusScheduled || p.ScheduledAt == nil {
			continue
		}
		key := CellKey(*p.ScheduledAt, SlotOf(*p.ScheduledAt))
		cells[key] = append(cells[key], p)
	}
	return cells
}

// FilterByType keeps posts matching the view mode. "all" (or empty)
// passes everything through.
func FilterByType(posts []*models.Post, typ string) []*models.Post {
	if typ == "" || typ == "all" {
		return posts
	}
	out := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if p.Type == typ {
			out = append(out, p)
		}
	}
	return out
}

// Drafts returns the pool portion of the planner: filtered posts still in
// draft state, input order preserved.
func Drafts(posts []*models.Post) []*models.Post {
	out := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if p.Status == models.PostStatusDraft {
			out = append(out, p)
		}
	}
	return out
}
