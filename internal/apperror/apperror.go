// Package apperror defines the error kinds surfaced by the call-activity core.
package apperror

import (
	"errors"
	"fmt"
	"math"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindInvalidState
	KindDistanceExceeded
	KindDeadlineExceeded
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindForbidden:
		return "Forbidden"
	case KindInvalidState:
		return "InvalidState"
	case KindDistanceExceeded:
		return "DistanceExceeded"
	case KindDeadlineExceeded:
		return "DeadlineExceeded"
	case KindInvalidInput:
		return "InvalidInput"
	default:
		return "Unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...any) error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func DeadlineExceeded(format string, args ...any) error {
	return &Error{Kind: KindDeadlineExceeded, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the cause for logging while exposing only message to callers.
func Wrap(kind Kind, err error, message string) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// DistanceError is returned when a GPS position is outside the allowed radius.
type DistanceError struct {
	Distance   float64
	MaxAllowed float64
}

func (e *DistanceError) Error() string {
	return fmt.Sprintf("You are %sm away from the customer location. Maximum allowed is %sm.",
		formatMeters(e.Distance), formatMeters(e.MaxAllowed))
}

func formatMeters(v float64) string {
	return fmt.Sprintf("%.0f", math.Round(v))
}

func KindOf(err error) (Kind, bool) {
	var de *DistanceError
	if errors.As(err, &de) {
		return KindDistanceExceeded, true
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
