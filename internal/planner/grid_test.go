package planner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierlabs/planner-api/internal/models"
	"github.com/atelierlabs/planner-api/internal/planner"
)

func ts(value string) *time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local)
	if err != nil {
		panic(err)
	}
	return &t
}

func scheduled(id int64, at string) *models.Post {
	return &models.Post{ID: id, Type: models.PostTypePost, Status: models.PostStatusScheduled, ScheduledAt: ts(at)}
}

func TestBuildGrid_BucketsByDateAndSlot(t *testing.T) {
	posts := []*models.Post{
		scheduled(1, "2024-06-20T18:00:00"),
		scheduled(2, "2024-06-20T09:00:00"),
		scheduled(3, "2024-06-21T18:00:00"),
	}

	cells := planner.BuildGrid(posts)

	require.Len(t, cells["2024-06-20_18:00"], 1)
	assert.Equal(t, int64(1), cells["2024-06-20_18:00"][0].ID)
	require.Len(t, cells["2024-06-20_09:00"], 1)
	assert.Equal(t, int64(2), cells["2024-06-20_09:00"][0].ID)
	require.Len(t, cells["2024-06-21_18:00"], 1)

	// a post lands in exactly one cell
	total := 0
	for _, posts := range cells {
		total += len(posts)
	}
	assert.Equal(t, 3, total)
}

func TestBuildGrid_SkipsDraftsAndPublished(t *testing.T) {
	now := time.Now()
	posts := []*models.Post{
		{ID: 1, Status: models.PostStatusDraft, ScheduledAt: &now},
		{ID: 2, Status: models.PostStatusPublished, ScheduledAt: &now},
		{ID: 3, Status: models.PostStatusScheduled, ScheduledAt: nil},
	}

	cells := planner.BuildGrid(posts)
	assert.Empty(t, cells)
}

func TestBuildGrid_ZeroPadsSlotTimes(t *testing.T) {
	posts := []*models.Post{scheduled(1, "2024-06-20T09:05:00")}

	cells := planner.BuildGrid(posts)

	require.Contains(t, cells, "2024-06-20_09:05")
}

func TestBuildGrid_PreservesInputOrderWithinCell(t *testing.T) {
	posts := []*models.Post{
		scheduled(7, "2024-06-20T18:00:00"),
		scheduled(3, "2024-06-20T18:00:00"),
		scheduled(5, "2024-06-20T18:00:00"),
	}

	cells := planner.BuildGrid(posts)

	cell := cells["2024-06-20_18:00"]
	require.Len(t, cell, 3)
	assert.Equal(t, int64(7), cell[0].ID)
	assert.Equal(t, int64(3), cell[1].ID)
	assert.Equal(t, int64(5), cell[2].ID)
}

func TestWindow_RollingDays(t *testing.T) {
	start := time.Date(2024, 6, 20, 15, 30, 0, 0, time.Local)

	days := planner.Window(start, 30)

	require.Len(t, days, 30)
	assert.Equal(t, "2024-06-20", days[0].Format("2006-01-02"))
	assert.Equal(t, "2024-07-19", days[29].Format("2006-01-02"))
	for _, d := range days {
		assert.Equal(t, 0, d.Hour())
		assert.Equal(t, 0, d.Minute())
	}
}

func TestFilterByType(t *testing.T) {
	posts := []*models.Post{
		{ID: 1, Type: models.PostTypePost},
		{ID: 2, Type: models.PostTypeStory},
		{ID: 3, Type: models.PostTypePost},
	}

	assert.Len(t, planner.FilterByType(posts, "all"), 3)
	assert.Len(t, planner.FilterByType(posts, ""), 3)

	stories := planner.FilterByType(posts, models.PostTypeStory)
	require.Len(t, stories, 1)
	assert.Equal(t, int64(2), stories[0].ID)
}

func TestDrafts_PoolKeepsInputOrder(t *testing.T) {
	posts := []*models.Post{
		{ID: 4, Status: models.PostStatusDraft},
		{ID: 1, Status: models.PostStatusScheduled, ScheduledAt: ts("2024-06-20T18:00:00")},
		{ID: 2, Status: models.PostStatusDraft},
	}

	drafts := planner.Drafts(posts)

	require.Len(t, drafts, 2)
	assert.Equal(t, int64(4), drafts[0].ID)
	assert.Equal(t, int64(2), drafts[1].ID)
}
