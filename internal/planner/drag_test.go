package planner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierlabs/planner-api/internal/models"
	"github.com/atelierlabs/planner-api/internal/planner"
)

func TestDragSession_DropOnCellSchedules(t *testing.T) {
	session := planner.NewDragSession()
	post := &models.Post{ID: 1, Status: models.PostStatusDraft}

	require.NoError(t, session.Start(post))
	assert.True(t, session.Dragging())
	assert.Equal(t, post, session.ActivePost())

	mutation, err := session.Drop(&planner.Target{Date: "2024-06-20", Time: "18:00"})
	require.NoError(t, err)
	require.NotNil(t, mutation)

	assert.Equal(t, int64(1), mutation.PostID)
	assert.Equal(t, models.PostStatusScheduled, mutation.Status)
	require.NotNil(t, mutation.ScheduledAt)
	assert.Equal(t, "2024-06-20 18:00:00", mutation.ScheduledAt.Format("2006-01-02 15:04:05"))
	assert.False(t, session.Dragging())
}

func TestDragSession_DropOnPoolKeepsScheduledAt(t *testing.T) {
	session := planner.NewDragSession()
	at := time.Date(2024, 6, 20, 18, 0, 0, 0, time.Local)
	post := &models.Post{ID: 2, Status: models.PostStatusScheduled, ScheduledAt: &at}

	require.NoError(t, session.Start(post))

	mutation, err := session.Drop(&planner.Target{Pool: true})
	require.NoError(t, err)
	require.NotNil(t, mutation)

	assert.Equal(t, models.PostStatusDraft, mutation.Status)
	// the stored scheduled time is deliberately left untouched
	assert.Nil(t, mutation.ScheduledAt)
}

func TestDragSession_SameCellIsNoOp(t *testing.T) {
	session := planner.NewDragSession()
	at := time.Date(2024, 6, 20, 18, 0, 0, 0, time.Local)
	post := &models.Post{ID: 3, Status: models.PostStatusScheduled, ScheduledAt: &at}

	require.NoError(t, session.Start(post))

	mutation, err := session.Drop(&planner.Target{Date: "2024-06-20", Time: "18:00"})
	require.NoError(t, err)
	assert.Nil(t, mutation)
}

func TestDragSession_DraftToPoolIsNoOp(t *testing.T) {
	session := planner.NewDragSession()
	post := &models.Post{ID: 4, Status: models.PostStatusDraft}

	require.NoError(t, session.Start(post))

	mutation, err := session.Drop(&planner.Target{Pool: true})
	require.NoError(t, err)
	assert.Nil(t, mutation)
}

func TestDragSession_NoTargetIsNoOp(t *testing.T) {
	session := planner.NewDragSession()
	post := &models.Post{ID: 5, Status: models.PostStatusDraft}

	require.NoError(t, session.Start(post))

	mutation, err := session.Drop(nil)
	require.NoError(t, err)
	assert.Nil(t, mutation)
	assert.False(t, session.Dragging())
}

func TestDragSession_PublishedIsNotDraggable(t *testing.T) {
	session := planner.NewDragSession()
	post := &models.Post{ID: 6, Status: models.PostStatusPublished}

	err := session.Start(post)
	assert.ErrorIs(t, err, planner.ErrPostNotDraggable)
	assert.False(t, session.Dragging())
}

func TestDragSession_SelectionModeDisablesDrag(t *testing.T) {
	session := planner.NewDragSession()
	session.SetSelectionMode(true)

	err := session.Start(&models.Post{ID: 7, Status: models.PostStatusDraft})
	assert.ErrorIs(t, err, planner.ErrSelectionActive)
}

func TestDragSession_CancelResets(t *testing.T) {
	session := planner.NewDragSession()
	require.NoError(t, session.Start(&models.Post{ID: 8, Status: models.PostStatusDraft}))

	session.Cancel()

	assert.False(t, session.Dragging())
	assert.Nil(t, session.ActivePost())
	_, err := session.Drop(&planner.Target{Pool: true})
	assert.ErrorIs(t, err, planner.ErrNotDragging)
}

func TestDragSession_RejectsConcurrentGesture(t *testing.T) {
	session := planner.NewDragSession()
	require.NoError(t, session.Start(&models.Post{ID: 9, Status: models.PostStatusDraft}))

	err := session.Start(&models.Post{ID: 10, Status: models.PostStatusDraft})
	assert.ErrorIs(t, err, planner.ErrAlreadyDragging)
}

func TestDragSession_BadCellTarget(t *testing.T) {
	session := planner.NewDragSession()
	require.NoError(t, session.Start(&models.Post{ID: 11, Status: models.PostStatusDraft}))

	_, err := session.Drop(&planner.Target{Date: "junk", Time: "18:00"})
	assert.ErrorIs(t, err, planner.ErrBadTarget)
}
