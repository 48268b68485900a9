package handler

import (
	"strconv"

	"go-atelier-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Quote computes the checkout totals without committing anything, so the POS
// screen can show the running figures while the cashier edits the cart
// POST /api/v1/pos/quote
func (h *CheckoutHandler) Quote(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	quote, err := h.checkoutService.Quote(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(quote)
}

// Checkout commits the cart as a sale
// POST /api/v1/pos/checkout
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.checkoutService.Checkout(&req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(result)
}

// History lists recent sales
// GET /api/v1/pos/history?limit=
func (h *CheckoutHandler) History(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	sales, err := h.checkoutService.History(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sales"})
	}
	return c.JSON(sales)
}
