package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// HandlePublishPostTask fires when a scheduled post's slot time arrives.
// The post is re-read before anything happens: a drag back to the pool,
// a reschedule or an earlier sweep run makes this task a no-op instead of
// a double publish. Errors are logged, never returned, so asynq does not
// retry a post the sweep will pick up anyway.
func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	post, err := q.pr.GetByID(ctx, payload.PostID)
	if err != nil {
		slog.Error(fmt.Sprintf("publish task: error loading post %d: %v", payload.PostID, err))
		return nil
	}
	if post == nil || !post.IsDue(time.Now()) {
		slog.Info(fmt.Sprintf("publish task: post %d is no longer due, skipping", payload.PostID))
		return nil
	}

	result, err := q.ps.PublishPost(ctx, post.ID)
	if err != nil {
		slog.Error(fmt.Sprintf("publish task: post %d: %v", post.ID, err))
		return nil
	}
	if !result.Success {
		slog.Error(fmt.Sprintf("publish task: post %d failed: %s", post.ID, result.Error))
	}

	return nil
}
