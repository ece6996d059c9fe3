package routes

import (
	"github.com/gofiber/fiber/v2"

	"sales-activity-backend/internal/handler"
	"sales-activity-backend/internal/middleware"
)

func SetupCustomerRoutes(app *fiber.App, c *Container) {
	hdl := handler.NewCustomerHandler(c.Customers, c.Users, c.Logger)

	api := app.Group("/api/customers", middleware.Auth(c.Config.JWTSecret))
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetDetail)
}

func SetupActivityRoutes(app *fiber.App, c *Container) {
	hdl := handler.NewActivityHandler(c.Activities, c.Logger)

	app.Get("/api/activities", middleware.Auth(c.Config.JWTSecret), hdl.GetAll)
}

func SetupRoleRoutes(app *fiber.App, c *Container) {
	hdl := handler.NewRoleHandler()

	app.Get("/api/roles", middleware.Auth(c.Config.JWTSecret), hdl.GetAll)
}
