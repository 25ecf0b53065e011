package server

import (
	"errors"

	"asset-janitor/core/reconcile"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the JSON body of a failed request.
type ErrorBody struct {
	Error   string `json:"error"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message,omitempty"`
	// Retryable hints that the same request may succeed later.
	Retryable bool `json:"retryable,omitempty"`
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	e, ok := reconcile.AsError(err)
	if !ok {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe.Code
		}
		return fiber.StatusInternalServerError
	}
	switch {
	case e.Kind == reconcile.KindInvalidRequest:
		return fiber.StatusBadRequest
	case e.Timeout:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// BodyFor builds the error body for err.
func BodyFor(err error) ErrorBody {
	if e, ok := reconcile.AsError(err); ok {
		return ErrorBody{
			Error:     string(e.Kind),
			Source:    e.Source,
			Message:   e.Message(),
			Retryable: e.Retryable(),
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ErrorBody{Error: fe.Message}
	}
	return ErrorBody{Error: "InternalError", Message: err.Error()}
}

// WriteError writes err as a JSON error response.
func WriteError(c *fiber.Ctx, err error) error {
	return c.Status(StatusFor(err)).JSON(BodyFor(err))
}

// ErrorHandler is the fiber error handler rendering ErrorBody for unhandled errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return WriteError(c, err)
}
