package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/assessment"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

func Error(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: err.Error(),
	})
}

// ValidationFailed renders field-level validation errors.
func ValidationFailed(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success: false,
		Error:   "Validation Error",
		Details: fields,
	})
}

// FromError maps the engine's error taxonomy onto HTTP statuses. Policy
// rejections reuse 403 with the policy reason as the message, the way
// attempt exhaustion has always been reported here.
func FromError(c *fiber.Ctx, err error) error {
	var verr *assessment.ValidationError
	if errors.As(err, &verr) {
		return Error(c, fiber.StatusBadRequest, err)
	}
	var perr *assessment.PolicyError
	if errors.As(err, &perr) {
		return Error(c, fiber.StatusForbidden, err)
	}
	switch {
	case errors.Is(err, assessment.ErrNotFound):
		return Error(c, fiber.StatusNotFound, err)
	case errors.Is(err, assessment.ErrUnauthorized):
		return Error(c, fiber.StatusUnauthorized, err)
	case errors.Is(err, assessment.ErrForbidden):
		return Error(c, fiber.StatusForbidden, err)
	case errors.Is(err, assessment.ErrConflict):
		return Error(c, fiber.StatusConflict, err)
	default:
		return Error(c, fiber.StatusInternalServerError,
			fiber.NewError(fiber.StatusInternalServerError, "Could not query database"))
	}
}
