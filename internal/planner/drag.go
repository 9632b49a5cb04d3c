package planner

import (
	"errors"
	"time"

	"github.com/atelierlabs/planner-api/internal/models"
)

var (
	ErrPostNotDraggable = errors.New("published posts cannot be dragged")
	ErrSelectionActive  = errors.New("dragging is disabled while selecting")
	ErrAlreadyDragging  = errors.New("a drag gesture is already active")
	ErrNotDragging      = errors.New("no drag gesture is active")
	ErrBadTarget        = errors.New("unrecognized drop target")
)

// Target is a resolved drop zone: the draft pool, or one calendar cell.
type Target struct {
	Pool bool
	Date string // 2006-01-02
	Time string // 15:04
}

// Mutation is the state change a successful drop produces. A nil
// ScheduledAt means the stored value is left untouched (dropping back to
// the pool deliberately keeps the last scheduled time).
type Mutation struct {
	PostID      int64
	Status      string
	ScheduledAt *time.Time
}

// DragSession is the state machine over a single drag gesture: Idle until
// Start captures a post, back to Idle on Drop or Cancel.
type DragSession struct {
	active        bool
	post          *models.Post
	selectionMode bool
}

func NewDragSession() *DragSession {
	return &DragSession{}
}

// SetSelectionMode disables dragging entirely while bulk selection is on.
func (s *DragSession) SetSelectionMode(on bool) {
	s.selectionMode = on
}

func (s *DragSession) Dragging() bool {
	return s.active
}

// ActivePost returns the post captured by the current gesture, for the
// preview overlay.
func (s *DragSession) ActivePost() *models.Post {
	if !s.active {
		return nil
	}
	return s.post
}

func (s *DragSession) Start(post *models.Post) error {
	if s.selectionMode {
		return ErrSelectionActive
	}
	if s.active {
		return ErrAlreadyDragging
	}
	if post == nil {
		return ErrNotDragging
	}
	if post.Status == models.PostStatusPublished {
		return ErrPostNotDraggable
	}
	s.active = true
	s.post = post
	return nil
}

func (s *DragSession) Cancel() {
	s.active = false
	s.post = nil
}

// Drop ends the gesture and translates the target into a Mutation. It
// returns (nil, nil) when no mutation applies: no recognized target, or
// the post dropped on the cell it already occupies.
func (s *DragSession) Drop(target *Target) (*Mutation, error) {
	if !s.active {
		return nil, ErrNotDragging
	}
	post := s.post
	s.Cancel()

	if target == nil {
		return nil, nil
	}

	if target.Pool {
		if post.Status == models.PostStatusDraft {
			return nil, nil
		}
		return &Mutation{PostID: post.ID, Status: models.PostStatusDraft}, nil
	}

	at, err := ResolveCellTime(target.Date, target.Time, time.Local)
	if err != nil {
		return nil, ErrBadTarget
	}

	if post.Status == models.PostStatusScheduled && post.ScheduledAt != nil && post.ScheduledAt.Equal(at) {
		return nil, nil
	}

	return &Mutation{PostID: post.ID, Status: models.PostStatusScheduled, ScheduledAt: &at}, nil
}

// ResolveCellTime combines a cell's date and slot into the scheduled
// timestamp, seconds zeroed.
func ResolveCellTime(date, slot string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+slot, loc)
}
