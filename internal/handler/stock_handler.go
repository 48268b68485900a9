package handler

import (
	"strconv"

	"go-atelier-erp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StockHandler struct {
	stockService service.StockService
}

func NewStockHandler(stockService service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// GetBalances lists on-hand quantities per product
// GET /api/v1/stock
func (h *StockHandler) GetBalances(c *fiber.Ctx) error {
	balances, err := h.stockService.GetBalances()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock balances"})
	}
	return c.JSON(balances)
}

// AdjustStock applies a signed manual delta to a product's balance
// POST /api/v1/stock/adjust
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	var req service.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	balance, err := h.stockService.AdjustStock(&req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(balance)
}

// GetMovements lists the stock movement log, newest first
// GET /api/v1/stock/movements?product_id=&limit=
func (h *StockHandler) GetMovements(c *fiber.Ctx) error {
	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		productID = &id
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	movements, err := h.stockService.GetMovements(productID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch movements"})
	}
	return c.JSON(movements)
}
