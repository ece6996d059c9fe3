package routes

import (
	"github.com/gofiber/fiber/v2"

	"sales-activity-backend/internal/handler"
	"sales-activity-backend/internal/middleware"
)

func SetupUserRoutes(app *fiber.App, c *Container) {
	hdl := handler.NewUserHandler(c.UserUC, c.Logger)

	api := app.Group("/api/users", middleware.Auth(c.Config.JWTSecret))
	api.Get("/me", hdl.GetProfile)
	api.Get("/subordinates", hdl.GetSubordinates)
	api.Get("/:id", hdl.GetDetail)
}
