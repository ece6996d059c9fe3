package handler

import (
	"github.com/gofiber/fiber/v2"

	"sales-activity-backend/internal/access"
)

type RoleHandler struct{}

func NewRoleHandler() *RoleHandler {
	return &RoleHandler{}
}

// GetAll returns the fixed role capability table.
func (h *RoleHandler) GetAll(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": access.Capabilities()})
}
