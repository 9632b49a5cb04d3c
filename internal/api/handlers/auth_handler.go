package handlers

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"

	config "github.com/atelierlabs/planner-api/configs"
	"github.com/atelierlabs/planner-api/internal/transfer"
	"github.com/atelierlabs/planner-api/pkg/utils"
)

const sessionDuration = 24 * time.Hour

// AuthHandler is the thin admin login: one shared password, one session
// cookie.
type AuthHandler struct {
	cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to parse json")
	}

	if h.cfg.AdminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.AdminPassword)) != 1 {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid password")
	}

	token, err := utils.GenerateToken(h.cfg.SecretKey, "admin", sessionDuration)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Unable to create session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionDuration.Seconds()),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: "Lax",
	})

	return c.SendStatus(fiber.StatusOK)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:   h.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	return c.SendStatus(fiber.StatusOK)
}
