package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sales-activity-backend/internal/usecase"
)

type PreCallPlanHandler struct {
	usecase *usecase.PreCallPlanUsecase
	logger  logrus.FieldLogger
	loc     *time.Location
}

func NewPreCallPlanHandler(u *usecase.PreCallPlanUsecase, logger logrus.FieldLogger, loc *time.Location) *PreCallPlanHandler {
	return &PreCallPlanHandler{usecase: u, logger: logger, loc: loc}
}

type PlanRequest struct {
	CustomerID uint   `json:"customer_id" validate:"required"`
	ContactID  uint   `json:"contact_id" validate:"required"`
	PlanDate   string `json:"plan_date" validate:"required,datetime=2006-01-02"`
	Objectives string `json:"objectives" validate:"max=2000"`
	Notes      string `json:"notes" validate:"max=2000"`
}

type ApprovalRequest struct {
	Approve         *bool  `json:"approve" validate:"required"`
	RejectionReason string `json:"rejection_reason" validate:"max=1000"`
}

func (h *PreCallPlanHandler) input(req PlanRequest) (usecase.PlanInput, error) {
	planDate, err := parseDate(req.PlanDate, h.loc)
	if err != nil {
		return usecase.PlanInput{}, err
	}
	return usecase.PlanInput{
		CustomerID: req.CustomerID,
		ContactID:  req.ContactID,
		PlanDate:   planDate,
		Objectives: req.Objectives,
		Notes:      req.Notes,
	}, nil
}

func (h *PreCallPlanHandler) Create(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req PlanRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	in, err := h.input(req)
	if err != nil {
		return handleError(c, h.logger, "Create", err)
	}

	plan, err := h.usecase.Create(c.UserContext(), userID, in)
	if err != nil {
		return handleError(c, h.logger, "Create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Pre-call plan created",
		"data":    plan,
	})
}

func (h *PreCallPlanHandler) GetAll(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	q, err := recordQuery(c, h.loc)
	if err != nil {
		return handleError(c, h.logger, "GetAll", err)
	}
	plans, err := h.usecase.List(c.UserContext(), userID, q)
	if err != nil {
		return handleError(c, h.logger, "GetAll", err)
	}
	return c.JSON(fiber.Map{"data": plans})
}

func (h *PreCallPlanHandler) GetPending(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	plans, err := h.usecase.ListPendingApproval(c.UserContext(), userID)
	if err != nil {
		return handleError(c, h.logger, "GetPending", err)
	}
	return c.JSON(fiber.Map{"data": plans})
}

func (h *PreCallPlanHandler) GetDetail(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "GetDetail", err)
	}

	plan, err := h.usecase.Get(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, h.logger, "GetDetail", err)
	}
	return c.JSON(fiber.Map{"data": plan})
}

func (h *PreCallPlanHandler) Update(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "Update", err)
	}

	var req PlanRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	in, err := h.input(req)
	if err != nil {
		return handleError(c, h.logger, "Update", err)
	}

	plan, err := h.usecase.Update(c.UserContext(), userID, id, in)
	if err != nil {
		return handleError(c, h.logger, "Update", err)
	}
	return c.JSON(fiber.Map{
		"message": "Pre-call plan updated",
		"data":    plan,
	})
}

func (h *PreCallPlanHandler) Delete(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "Delete", err)
	}

	if err := h.usecase.Delete(c.UserContext(), userID, id); err != nil {
		return handleError(c, h.logger, "Delete", err)
	}
	return c.JSON(fiber.Map{"message": "Pre-call plan deleted"})
}

func (h *PreCallPlanHandler) Submit(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "Submit", err)
	}

	plan, err := h.usecase.Submit(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, h.logger, "Submit", err)
	}
	return c.JSON(fiber.Map{
		"message": "Pre-call plan submitted for approval",
		"data":    plan,
	})
}

func (h *PreCallPlanHandler) ProcessApproval(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "ProcessApproval", err)
	}

	var req ApprovalRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	plan, err := h.usecase.ApproveOrReject(c.UserContext(), userID, id, usecase.PlanDecision{
		Approve:         *req.Approve,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return handleError(c, h.logger, "ProcessApproval", err)
	}

	message := "Pre-call plan rejected"
	if *req.Approve {
		message = "Pre-call plan approved"
	}
	return c.JSON(fiber.Map{"message": message, "data": plan})
}
