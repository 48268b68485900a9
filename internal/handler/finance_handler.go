package handler

import (
	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type FinanceHandler struct {
	financeService service.FinanceService
}

func NewFinanceHandler(financeService service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// GetEntries lists entries of one ledger side
// GET /api/v1/finance?type=SAIDA|ENTRADA
func (h *FinanceHandler) GetEntries(c *fiber.Ctx) error {
	entries, err := h.financeService.GetEntries(model.EntryType(c.Query("type", "SAIDA")))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(entries)
}

// CreateEntry adds a ledger entry
// POST /api/v1/finance
func (h *FinanceHandler) CreateEntry(c *fiber.Ctx) error {
	var req service.FinanceEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.financeService.CreateEntry(&req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(entry)
}

// UpdateEntry edits a ledger entry
// PUT /api/v1/finance/:id
func (h *FinanceHandler) UpdateEntry(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	var req service.FinanceEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.financeService.UpdateEntry(id, &req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(entry)
}

// ToggleStatus flips an entry between PENDENTE and PAGO
// PATCH /api/v1/finance/:id/toggle
func (h *FinanceHandler) ToggleStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	entry, err := h.financeService.ToggleStatus(id, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(entry)
}

// DeleteEntry removes a ledger entry
// DELETE /api/v1/finance/:id
func (h *FinanceHandler) DeleteEntry(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	if err := h.financeService.DeleteEntry(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Entry deleted successfully"})
}
