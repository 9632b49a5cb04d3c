package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"github.com/atelierlabs/planner-api/internal/models"
	"github.com/atelierlabs/planner-api/internal/planner"
	"github.com/atelierlabs/planner-api/internal/queue"
	"github.com/atelierlabs/planner-api/internal/service"
	"github.com/atelierlabs/planner-api/internal/transfer"
)

type PostHandler struct {
	s           service.PostService
	ps          service.PublishService
	AsynqClient *asynq.Client
}

func NewPostHandler(s service.PostService, ps service.PublishService, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: s, ps: ps, AsynqClient: asynqClient}
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)
	typeFilter := c.Query("type", "all")

	if brandID == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "brand_id is required")
	}

	posts, err := h.s.List(c.Context(), int64(brandID), typeFilter)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to list posts")
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

// UploadDrafts is the intake boundary: each accepted file becomes one
// draft post in the pool.
func (h *PostHandler) UploadDrafts(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return errorJSON(c, fiber.StatusBadRequest, "Unable to parse form")
	}

	brandID := c.QueryInt("brand_id", 0)
	if brandID == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "brand_id is required")
	}
	uploadType := c.FormValue("type", models.PostTypePost)

	files := form.File["files"]
	if len(files) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "No files selected")
	}

	created, err := h.s.CreateDrafts(c.Context(), int64(brandID), uploadType, files)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(created)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	var pu transfer.PostUpdate
	if err := c.BodyParser(&pu); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to parse json")
	}

	if err := h.s.Update(c.Context(), &pu); err != nil {
		switch err {
		case service.ErrPostNotFound:
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case service.ErrPostPublished, service.ErrInvalidType:
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, "Unable to update post")
	}

	return c.SendStatus(fiber.StatusOK)
}

// MovePost commits a drag gesture. A newly scheduled post also gets its
// fast-path publish task enqueued for the slot time.
func (h *PostHandler) MovePost(c *fiber.Ctx) error {
	var req transfer.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to parse json")
	}

	mutation, err := h.s.Move(c.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case planner.ErrPostNotDraggable, planner.ErrBadTarget:
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Unable to move post")
	}

	if mutation == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "No change"})
	}

	if mutation.Status == models.PostStatusScheduled && mutation.ScheduledAt != nil {
		delay := time.Until(*mutation.ScheduledAt)
		if delay < 0 {
			delay = 0
		}
		payload := queue.PublishPostPayload{PostID: mutation.PostID}
		if err := queue.EnqueuePost(h.AsynqClient, payload, delay); err != nil {
			// The cron sweep still publishes the post later.
			slog.Error("Error scheduling publish task: " + err.Error())
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"post_id":      mutation.PostID,
		"status":       mutation.Status,
		"scheduled_at": mutation.ScheduledAt,
	})
}

// PublishPost is the manual "publish now" action on a single post.
func (h *PostHandler) PublishPost(c *fiber.Ctx) error {
	var req transfer.PublishPostRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to parse json")
	}

	result, err := h.ps.PublishPost(c.Context(), req.PostID)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case service.ErrBrandCredentialsMissing:
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case service.ErrNoMedia, service.ErrAlreadyPublished:
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Unable to publish post")
	}

	if !result.Success {
		return errorJSON(c, fiber.StatusBadRequest, result.Error)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	postID := c.QueryInt("id", 0)

	if err := h.s.Remove(c.Context(), int64(postID)); err != nil {
		if err == service.ErrPostNotFound {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Unable to remove post")
	}

	return c.SendStatus(fiber.StatusOK)
}

// BatchDelete removes the whole selection in one call; on failure the
// selection survives so the action can be retried.
func (h *PostHandler) BatchDelete(c *fiber.Ctx) error {
	var req transfer.BatchDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to parse json")
	}

	if err := h.s.RemoveMany(c.Context(), req.IDs); err != nil {
		if err == service.ErrEmptySelection {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Unable to delete posts")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deleted": len(req.IDs)})
}
