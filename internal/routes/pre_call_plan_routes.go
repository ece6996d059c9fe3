package routes

import (
	"github.com/gofiber/fiber/v2"

	"sales-activity-backend/internal/handler"
	"sales-activity-backend/internal/middleware"
)

func SetupPreCallPlanRoutes(app *fiber.App, c *Container) {
	hdl := handler.NewPreCallPlanHandler(c.Plans, c.Logger, c.Config.Location)

	api := app.Group("/api/pre-call-plans", middleware.Auth(c.Config.JWTSecret), middleware.CallActivityAccess())

	api.Post("/", hdl.Create)
	api.Get("/", hdl.GetAll)
	api.Get("/pending", hdl.GetPending) // approver inbox
	api.Get("/:id", hdl.GetDetail)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
	api.Post("/:id/submit", hdl.Submit)
	api.Post("/:id/approval", hdl.ProcessApproval)
}
