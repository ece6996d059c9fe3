package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sales-activity-backend/internal/repository"
)

type NotificationHandler struct {
	repo   repository.NotificationRepository
	logger logrus.FieldLogger
}

func NewNotificationHandler(repo repository.NotificationRepository, logger logrus.FieldLogger) *NotificationHandler {
	return &NotificationHandler{repo: repo, logger: logger}
}

// GetAll returns the caller's latest notifications; ?unread=true hides read ones.
func (h *NotificationHandler) GetAll(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	list, err := h.repo.ListByUser(c.UserContext(), userID, c.QueryBool("unread", false))
	if err != nil {
		return handleError(c, h.logger, "GetAll", err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "MarkRead", err)
	}

	if err := h.repo.MarkRead(c.UserContext(), userID, id); err != nil {
		return handleError(c, h.logger, "MarkRead", err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
