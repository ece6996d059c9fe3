package routes

import (
	"github.com/gofiber/fiber/v2"

	"sales-activity-backend/internal/handler"
	"sales-activity-backend/internal/middleware"
)

func SetupNotificationRoutes(app *fiber.App, c *Container) {
	hdl := handler.NewNotificationHandler(c.Notifications, c.Logger)

	api := app.Group("/api/notifications", middleware.Auth(c.Config.JWTSecret))
	api.Get("/", hdl.GetAll)
	api.Put("/:id/read", hdl.MarkRead)
}
