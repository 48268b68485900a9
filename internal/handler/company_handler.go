package handler

import (
	"go-atelier-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CompanyHandler struct {
	companyService service.CompanyService
}

func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// GetSettings returns the company identity row
// GET /api/v1/company
func (h *CompanyHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.companyService.GetSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch company settings"})
	}
	return c.JSON(settings)
}

// UpdateSettings edits the company identity row
// PUT /api/v1/company
func (h *CompanyHandler) UpdateSettings(c *fiber.Ctx) error {
	var req service.CompanySettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	settings, err := h.companyService.UpdateSettings(&req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(settings)
}
