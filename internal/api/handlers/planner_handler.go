package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	config "github.com/atelierlabs/planner-api/configs"
	"github.com/atelierlabs/planner-api/internal/planner"
	"github.com/atelierlabs/planner-api/internal/service"
	"github.com/atelierlabs/planner-api/internal/transfer"
)

// PlannerHandler serves the calendar view and the time-slot registry.
type PlannerHandler struct {
	cfg      config.Config
	posts    service.PostService
	settings service.SettingsService
}

func NewPlannerHandler(cfg config.Config, posts service.PostService, settings service.SettingsService) *PlannerHandler {
	return &PlannerHandler{cfg: cfg, posts: posts, settings: settings}
}

// GetPlanner assembles the full grid payload: the rolling day window, the
// sorted slot rows, scheduled posts bucketed per cell and the draft pool.
func (h *PlannerHandler) GetPlanner(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)
	typeFilter := c.Query("type", "all")
	days := c.QueryInt("days", h.cfg.PlannerWindowDays)

	if brandID == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "brand_id is required")
	}

	posts, err := h.posts.List(c.Context(), int64(brandID), typeFilter)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to list posts")
	}

	slots, err := h.settings.GetSlots(c.Context(), int64(brandID))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to load time slots")
	}

	window := planner.Window(time.Now(), days)
	dayStrs := make([]string, len(window))
	for i, d := range window {
		dayStrs[i] = d.Format("2006-01-02")
	}

	view := transfer.PlannerView{
		Days:   dayStrs,
		Slots:  slots,
		Cells:  planner.BuildGrid(posts),
		Drafts: planner.Drafts(posts),
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *PlannerHandler) GetSlots(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)
	if brandID == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "brand_id is required")
	}

	slots, err := h.settings.GetSlots(c.Context(), int64(brandID))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to load time slots")
	}

	return c.Status(fiber.StatusOK).JSON(slots)
}

func (h *PlannerHandler) AddSlot(c *fiber.Ctx) error {
	var su transfer.SlotUpdate
	if err := c.BodyParser(&su); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to parse json")
	}

	slots, err := h.settings.AddSlot(c.Context(), su.BrandID, su.Time)
	if err != nil {
		if err == planner.ErrInvalidSlot {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, "Unable to add time slot")
	}

	return c.Status(fiber.StatusOK).JSON(slots)
}

func (h *PlannerHandler) RemoveSlot(c *fiber.Ctx) error {
	var su transfer.SlotUpdate
	if err := c.BodyParser(&su); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to parse json")
	}

	slots, err := h.settings.RemoveSlot(c.Context(), su.BrandID, su.Time)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to remove time slot")
	}

	return c.Status(fiber.StatusOK).JSON(slots)
}
