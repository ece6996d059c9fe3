package routes

import (
	"github.com/gofiber/fiber/v2"

	"sales-activity-backend/internal/handler"
	"sales-activity-backend/internal/middleware"
)

func SetupCoachingRoutes(app *fiber.App, c *Container) {
	hdl := handler.NewCoachingHandler(c.Coaching, c.Logger)

	api := app.Group("/api/coaching", middleware.Auth(c.Config.JWTSecret), middleware.CallActivityAccess())
	api.Get("/summary", hdl.GetSummary)
}
