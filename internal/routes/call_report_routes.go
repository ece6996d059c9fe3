package routes

import (
	"github.com/gofiber/fiber/v2"

	"sales-activity-backend/internal/handler"
	"sales-activity-backend/internal/middleware"
)

func SetupCallReportRoutes(app *fiber.App, c *Container) {
	hdl := handler.NewCallReportHandler(c.Reports, c.Logger, c.Config.Location)
	coaching := handler.NewCoachingHandler(c.Coaching, c.Logger)

	api := app.Group("/api/call-reports", middleware.Auth(c.Config.JWTSecret), middleware.CallActivityAccess())

	api.Post("/", hdl.CheckIn)
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetDetail)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
	api.Post("/:id/checkout", hdl.CheckOut)
	api.Post("/:id/submit", hdl.Submit)
	api.Post("/:id/photos", hdl.AddPhoto)
	api.Delete("/:id/photos/:photoId", hdl.DeletePhoto)
	api.Get("/:id/coaching", coaching.GetByReport)
	api.Post("/:id/coaching", coaching.Create)
}
