package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sales-activity-backend/internal/repository"
)

type CustomerHandler struct {
	repo     repository.CustomerRepository
	userRepo repository.UserRepository
	logger   logrus.FieldLogger
}

func NewCustomerHandler(repo repository.CustomerRepository, userRepo repository.UserRepository, logger logrus.FieldLogger) *CustomerHandler {
	return &CustomerHandler{repo: repo, userRepo: userRepo, logger: logger}
}

// GetAll lists customers of the caller's company, optionally filtered by ?search=.
func (h *CustomerHandler) GetAll(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.userRepo.FindByID(c.UserContext(), userID)
	if err != nil {
		return handleError(c, h.logger, "GetAll", err)
	}
	customers, err := h.repo.GetAll(c.UserContext(), user.CompanyID, c.Query("search"))
	if err != nil {
		return handleError(c, h.logger, "GetAll", err)
	}
	return c.JSON(fiber.Map{"data": customers})
}

func (h *CustomerHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "GetDetail", err)
	}

	customer, err := h.repo.FindByID(c.UserContext(), id)
	if err != nil {
		return handleError(c, h.logger, "GetDetail", err)
	}
	return c.JSON(fiber.Map{"data": customer})
}
