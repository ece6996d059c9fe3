package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sales-activity-backend/internal/usecase"
)

type CoachingHandler struct {
	usecase *usecase.CoachingUsecase
	logger  logrus.FieldLogger
}

func NewCoachingHandler(u *usecase.CoachingUsecase, logger logrus.FieldLogger) *CoachingHandler {
	return &CoachingHandler{usecase: u, logger: logger}
}

type CoachingRequest struct {
	Rating   *int   `json:"rating"`
	Comments string `json:"comments" validate:"required_without=Rating,max=5000"`
}

func (h *CoachingHandler) Create(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	reportID, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "Create", err)
	}

	var req CoachingRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	record, err := h.usecase.AddCoaching(c.UserContext(), userID, reportID, usecase.CoachingInput{
		Rating:   req.Rating,
		Comments: req.Comments,
	})
	if err != nil {
		return handleError(c, h.logger, "Create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Coaching feedback added",
		"data":    record,
	})
}

func (h *CoachingHandler) GetByReport(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	reportID, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "GetByReport", err)
	}

	records, err := h.usecase.ListForReport(c.UserContext(), userID, reportID)
	if err != nil {
		return handleError(c, h.logger, "GetByReport", err)
	}
	return c.JSON(fiber.Map{"data": records})
}

// GetSummary returns the average rating per SR visible to the caller.
func (h *CoachingHandler) GetSummary(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	summary, err := h.usecase.Summary(c.UserContext(), userID)
	if err != nil {
		return handleError(c, h.logger, "GetSummary", err)
	}
	return c.JSON(fiber.Map{"data": summary})
}
