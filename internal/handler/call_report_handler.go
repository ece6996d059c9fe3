package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sales-activity-backend/internal/model"
	"sales-activity-backend/internal/usecase"
)

type CallReportHandler struct {
	usecase *usecase.CallReportUsecase
	logger  logrus.FieldLogger
	loc     *time.Location
}

func NewCallReportHandler(u *usecase.CallReportUsecase, logger logrus.FieldLogger, loc *time.Location) *CallReportHandler {
	return &CallReportHandler{usecase: u, logger: logger, loc: loc}
}

type CheckInRequest struct {
	PreCallPlanID *uint    `json:"pre_call_plan_id"`
	CustomerID    uint     `json:"customer_id" validate:"required"`
	ContactID     uint     `json:"contact_id" validate:"required"`
	CallDate      string   `json:"call_date" validate:"omitempty,datetime=2006-01-02"`
	Latitude      *float64 `json:"latitude" validate:"required_with=Longitude,omitempty,min=-90,max=90"`
	Longitude     *float64 `json:"longitude" validate:"required_with=Latitude,omitempty,min=-180,max=180"`
	CallObjective string   `json:"call_objective" validate:"max=2000"`
}

type ReportRequest struct {
	ContactID          *uint  `json:"contact_id"`
	CallObjective      string `json:"call_objective" validate:"max=2000"`
	CustomerResponse   string `json:"customer_response" validate:"max=5000"`
	CustomerRequest    string `json:"customer_request" validate:"max=5000"`
	CustomerObjections string `json:"customer_objections" validate:"max=5000"`
	CompetitorInfo     string `json:"competitor_info" validate:"max=5000"`
	NextAction         string `json:"next_action" validate:"max=2000"`
	ActivityIDs        []uint `json:"activity_ids" validate:"omitempty,dive,required"`
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

type PhotoRequest struct {
	Category string `json:"category" validate:"required,oneof=STORE PRODUCT DISPLAY SELFIE DOCUMENT OTHER"`
	URL      string `json:"url" validate:"required,url"`
	Caption  string `json:"caption" validate:"max=500"`
}

// CheckIn creates the DRAFT report, validating the position when one is sent.
func (h *CallReportHandler) CheckIn(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req CheckInRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	in := usecase.CheckInInput{
		PreCallPlanID: req.PreCallPlanID,
		CustomerID:    req.CustomerID,
		ContactID:     req.ContactID,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		CallObjective: req.CallObjective,
	}
	if req.CallDate != "" {
		callDate, err := parseDate(req.CallDate, h.loc)
		if err != nil {
			return handleError(c, h.logger, "CheckIn", err)
		}
		in.CallDate = &callDate
	}

	report, err := h.usecase.CheckIn(c.UserContext(), userID, in)
	if err != nil {
		return handleError(c, h.logger, "CheckIn", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Checked in",
		"data":    report,
	})
}

func (h *CallReportHandler) GetAll(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	q, err := recordQuery(c, h.loc)
	if err != nil {
		return handleError(c, h.logger, "GetAll", err)
	}
	reports, err := h.usecase.List(c.UserContext(), userID, q)
	if err != nil {
		return handleError(c, h.logger, "GetAll", err)
	}
	return c.JSON(fiber.Map{"data": reports})
}

func (h *CallReportHandler) GetDetail(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "GetDetail", err)
	}

	report, err := h.usecase.Get(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, h.logger, "GetDetail", err)
	}
	return c.JSON(fiber.Map{"data": report})
}

func (h *CallReportHandler) Update(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "Update", err)
	}

	var req ReportRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	report, err := h.usecase.Update(c.UserContext(), userID, id, usecase.ReportInput{
		ContactID:          req.ContactID,
		CallObjective:      req.CallObjective,
		CustomerResponse:   req.CustomerResponse,
		CustomerRequest:    req.CustomerRequest,
		CustomerObjections: req.CustomerObjections,
		CompetitorInfo:     req.CompetitorInfo,
		NextAction:         req.NextAction,
		ActivityIDs:        req.ActivityIDs,
	})
	if err != nil {
		return handleError(c, h.logger, "Update", err)
	}
	return c.JSON(fiber.Map{
		"message": "Call report updated",
		"data":    report,
	})
}

func (h *CallReportHandler) Delete(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{"message": "Call report deleted"})
}

func (h *CallReportHandler) CheckOut(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "CheckOut", err)
	}

	var req CheckOutRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	report, err := h.usecase.CheckOut(c.UserContext(), userID, id, usecase.CheckOutInput{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		return handleError(c, h.logger, "CheckOut", err)
	}
	return c.JSON(fiber.Map{
		"message": "Checked out",
		"data":    report,
	})
}

func (h *CallReportHandler) Submit(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "Submit", err)
	}

	report, err := h.usecase.Submit(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, h.logger, "Submit", err)
	}
	return c.JSON(fiber.Map{
		"message": "Call report submitted",
		"data":    report,
	})
}

func (h *CallReportHandler) AddPhoto(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "AddPhoto", err)
	}

	var req PhotoRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	photo, err := h.usecase.AddPhoto(c.UserContext(), userID, id, usecase.PhotoInput{
		Category: model.PhotoCategory(req.Category),
		URL:      req.URL,
		Caption:  req.Caption,
	})
	if err != nil {
		return handleError(c, h.logger, "AddPhoto", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Photo added",
		"data":    photo,
	})
}

func (h *CallReportHandler) DeletePhoto(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, h.logger, "DeletePhoto", err)
	}
	photoID, err := paramID(c, "photoId")
	if err != nil {
		return handleError(c, h.logger, "DeletePhoto", err)
	}

	if err := h.usecase.DeletePhoto(c.UserContext(), userID, id, photoID); err != nil {
		return handleError(c, h.logger, "DeletePhoto", err)
	}
	return c.JSON(fiber.Map{"message": "Photo deleted"})
}
