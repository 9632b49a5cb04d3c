package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atelierlabs/planner-api/internal/service"
	"github.com/atelierlabs/planner-api/internal/transfer"
)

type BrandHandler struct {
	s service.BrandService
}

func NewBrandHandler(s service.BrandService) *BrandHandler {
	return &BrandHandler{s: s}
}

func (h *BrandHandler) ListBrands(c *fiber.Ctx) error {
	brands, err := h.s.List(c.Context())
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to list brands")
	}

	return c.Status(fiber.StatusOK).JSON(brands)
}

func (h *BrandHandler) BrandInfo(c *fiber.Ctx) error {
	brandID := c.QueryInt("id", 0)

	brand, err := h.s.Info(c.Context(), int64(brandID))
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, "Brand not found")
	}

	return c.Status(fiber.StatusOK).JSON(brand)
}

func (h *BrandHandler) CreateBrand(c *fiber.Ctx) error {
	var bu transfer.BrandUpdate
	if err := c.BodyParser(&bu); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to parse json")
	}

	id, err := h.s.Create(c.Context(), &bu)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *BrandHandler) UpdateBrand(c *fiber.Ctx) error {
	var bu transfer.BrandUpdate
	if err := c.BodyParser(&bu); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unable to parse json")
	}

	if err := h.s.Update(c.Context(), &bu); err != nil {
		if err == service.ErrBrandNotFound {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, "Unable to update brand")
	}

	return c.SendStatus(fiber.StatusOK)
}
