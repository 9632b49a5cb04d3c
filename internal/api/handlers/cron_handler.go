package handlers

import (
	"github.com/gofiber/fiber/v2"

	config "github.com/atelierlabs/planner-api/configs"
	job "github.com/atelierlabs/planner-api/internal/jobs"
)

// CronHandler is the external sweep trigger, authenticated by a shared
// bearer secret. The check is bypassed outside production so the sweep
// can be exercised locally.
type CronHandler struct {
	cfg   config.Config
	sweep *job.PublishSweepJob
}

func NewCronHandler(cfg config.Config, sweep *job.PublishSweepJob) *CronHandler {
	return &CronHandler{cfg: cfg, sweep: sweep}
}

func (h *CronHandler) Check(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader != "Bearer "+h.cfg.CronSecret {
		if h.cfg.IsProduction() {
			return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
		}
	}

	report, err := h.sweep.Sweep(c.Context())
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}

	if report.Processed == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "No posts to publish"})
	}

	return c.Status(fiber.StatusOK).JSON(report)
}
