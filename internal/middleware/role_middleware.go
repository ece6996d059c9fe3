package middleware

import (
	"github.com/gofiber/fiber/v2"

	"sales-activity-backend/internal/access"
	"sales-activity-backend/internal/model"
)

// CallActivityAccess rejects roles that may not see pre-call plans or call
// reports before any handler runs. The usecases re-check against the stored
// role, so this only short-circuits requests from tokens carrying a role.
func CallActivityAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Next()
		}
		if !access.CanAccessCallActivities(model.Role(role)) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied: role " + role + " cannot access call activities",
				"code":  "Forbidden",
			})
		}
		return c.Next()
	}
}
