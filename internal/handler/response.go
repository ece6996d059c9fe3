package handler

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sales-activity-backend/config"
	"sales-activity-backend/internal/apperror"
	"sales-activity-backend/internal/repository"
)

const dateLayout = "2006-01-02"

func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindInvalidState:
		return fiber.StatusConflict
	case apperror.KindDistanceExceeded, apperror.KindDeadlineExceeded:
		return fiber.StatusUnprocessableEntity
	case apperror.KindInvalidInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError writes the {"error": ...} body for err. Unclassified errors are
// logged and reported as 500 without leaking the cause.
func handleError(c *fiber.Ctx, logger logrus.FieldLogger, funcName string, err error) error {
	kind, ok := apperror.KindOf(err)
	if !ok {
		config.LogError(logger.WithField("request_id", c.Locals("request_id")), "handler", funcName, c.Method()+" "+c.Path(), nil, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	body := fiber.Map{"error": err.Error(), "code": kind.String()}
	var de *apperror.DistanceError
	if errors.As(err, &de) {
		body["distance_meters"] = math.Round(de.Distance)
		body["max_allowed_meters"] = de.MaxAllowed
	}
	return c.Status(statusFor(kind)).JSON(body)
}

// currentUserID reads the id the Auth middleware stored from the token claims.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("user_id").(float64)
	if !ok || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid user in token"})
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.InvalidInput("invalid %s", name)
	}
	return uint(id), nil
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, apperror.InvalidInput("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// recordQuery reads status, sr_id, from, to, limit and offset from the query string.
func recordQuery(c *fiber.Ctx, loc *time.Location) (repository.RecordQuery, error) {
	q := repository.RecordQuery{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("sr_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return q, apperror.InvalidInput("invalid sr_id")
		}
		srID := uint(id)
		q.SRID = &srID
	}
	if raw := c.Query("from"); raw != "" {
		from, err := parseDate(raw, loc)
		if err != nil {
			return q, err
		}
		q.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDate(raw, loc)
		if err != nil {
			return q, err
		}
		q.To = &to
	}
	return q, nil
}
