package queue

import (
	"github.com/atelierlabs/planner-api/internal/repository"
	"github.com/atelierlabs/planner-api/internal/service"
)

type Queue struct {
	pr repository.PostRepository
	ps service.PublishService
}

func NewQueue(pr repository.PostRepository, ps service.PublishService) *Queue {
	return &Queue{
		pr: pr,
		ps: ps,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}
