package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sales-activity-backend/internal/repository"
)

type ActivityHandler struct {
	repo   repository.ActivityRepository
	logger logrus.FieldLogger
}

func NewActivityHandler(repo repository.ActivityRepository, logger logrus.FieldLogger) *ActivityHandler {
	return &ActivityHandler{repo: repo, logger: logger}
}

func (h *ActivityHandler) GetAll(c *fiber.Ctx) error {
	activities, err := h.repo.GetAll(c.UserContext())
	if err != nil {
		return handleError(c, h.logger, "GetAll", err)
	}
	return c.JSON(fiber.Map{"data": activities})
}
