package handler

import (
	"go-atelier-erp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminUserHandler serves the /api/admin/users surface the admin screen
// consumes. It deviates from the usual REST shape on purpose: update carries
// the id in the body and delete takes it as a query parameter.
type AdminUserHandler struct {
	userService service.UserService
}

func NewAdminUserHandler(userService service.UserService) *AdminUserHandler {
	return &AdminUserHandler{userService: userService}
}

// ListUsers returns every account
// GET /api/admin/users
func (h *AdminUserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(users)
}

// CreateUser creates an account
// POST /api/admin/users
func (h *AdminUserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.userService.CreateUser(&req, actorID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user.ToAdminResponse(),
	})
}

// UpdateUser updates an account; the target id travels in the body
// PUT /api/admin/users
func (h *AdminUserHandler) UpdateUser(c *fiber.Ctx) error {
	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.userService.UpdateUser(&req, actorID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(user.ToAdminResponse())
}

// DeleteUser removes an account identified by the id query parameter
// DELETE /api/admin/users?id=<uuid>
func (h *AdminUserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if userID.String() == actorID(c) {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot delete your own account"})
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
