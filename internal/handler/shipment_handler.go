package handler

import (
	"go-atelier-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ShipmentHandler struct {
	shipmentService service.ShipmentService
}

func NewShipmentHandler(shipmentService service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// GetShipments lists shipments, newest first
// GET /api/v1/shipments
func (h *ShipmentHandler) GetShipments(c *fiber.Ctx) error {
	shipments, err := h.shipmentService.GetShipments()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch shipments"})
	}
	return c.JSON(shipments)
}

// CreateShipment registers a package
// POST /api/v1/shipments
func (h *ShipmentHandler) CreateShipment(c *fiber.Ctx) error {
	var req service.ShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	shipment, err := h.shipmentService.CreateShipment(&req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(shipment)
}

// UpdateShipment edits a shipment's customer, tracking code or contents
// PUT /api/v1/shipments/:id
func (h *ShipmentHandler) UpdateShipment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shipment ID"})
	}

	var req service.ShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	shipment, err := h.shipmentService.UpdateShipment(id, &req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(shipment)
}

// MarkSent flips a pending shipment to ENVIADO
// PATCH /api/v1/shipments/:id/sent
func (h *ShipmentHandler) MarkSent(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shipment ID"})
	}

	shipment, err := h.shipmentService.MarkSent(id, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(shipment)
}
