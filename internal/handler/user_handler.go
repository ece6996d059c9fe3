package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sales-activity-backend/internal/usecase"
)

type UserHandler struct {
	usecase *usecase.UserUsecase
	logger  logrus.FieldLogger
}

func NewUserHandler(u *usecase.UserUsecase, logger logrus.FieldLogger) *UserHandler {
	return &UserHandler{usecase: u, logger: logger}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.usecase.Profile(c.UserContext(), userID)
	if err != nil {
		return handleError(c, h.logger, "GetProfile", err)
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) GetSubordinates(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	users, err := h.usecase.Subordinates(c.UserContext(), userID)
	if err != nil {
		return handleError(c, h.logger, "GetSubordinates", err)
	}
	return c.JSON(fiber.Map{"data": users})
}

func (h *UserHandler) GetDetail(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	targetID, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "GetDetail", err)
	}

	user, err := h.usecase.GetUser(c.UserContext(), userID, targetID)
	if err != nil {
		return handleError(c, h.logger, "GetDetail", err)
	}
	return c.JSON(fiber.Map{"data": user})
}
