package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atelierlabs/planner-api/internal/service"
	"github.com/atelierlabs/planner-api/internal/transfer"
)

// PublishHandler is the credential proxy the planner client calls for an
// immediate publish: it resolves the brand's stored tokens and runs the
// two-phase protocol without touching any post row.
type PublishHandler struct {
	s service.PublishService
}

func NewPublishHandler(s service.PublishService) *PublishHandler {
	return &PublishHandler{s: s}
}

func (h *PublishHandler) PublishNow(c *fiber.Ctx) error {
	var req transfer.PublishRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to parse json")
	}

	if req.ImageURL == "" || req.BrandID == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Missing required fields")
	}

	result, err := h.s.PublishByBrand(c.Context(), req.ImageURL, req.Caption, req.BrandID)
	if err != nil {
		if err == service.ErrBrandCredentialsMissing {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if !result.Success {
		return errorJSON(c, fiber.StatusBadRequest, result.Error)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
