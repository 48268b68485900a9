package handler

import (
	"errors"

	"go-atelier-erp/internal/repository"
	"go-atelier-erp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorID reads the authenticated user id set by the auth middleware,
// falling back to "system" for unauthenticated paths.
func actorID(c *fiber.Ctx) string {
	if id := c.Locals("user_id"); id != nil {
		return id.(string)
	}
	return "system"
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// statusFor maps service sentinels onto HTTP statuses: unknown resources are
// 404, state conflicts (bad transition, terminal order, stock shortage) are
// 409, everything else is treated as a bad request.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrMaterialNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrShipmentNotFound),
		errors.Is(err, service.ErrBOMLineNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrOrderTerminal),
		errors.Is(err, service.ErrMaterialInUse),
		errors.Is(err, service.ErrShipmentSent),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrSKUExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}
