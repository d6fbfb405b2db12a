package api

import (
	"errors"

	"vfx-dashboard/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// Error renders known service errors as an error envelope. Anything else is
// handed back to Fiber so the request logger records it and the app error
// handler answers with a generic 500.
func Error(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return Fail(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, models.ErrInvalidID):
		return Fail(c, fiber.StatusBadRequest, "Invalid id")
	case errors.Is(err, models.ErrInvalidInput):
		return Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrForbidden):
		return Fail(c, fiber.StatusForbidden, "Forbidden")
	case errors.Is(err, models.ErrEmailTaken):
		return Fail(c, fiber.StatusConflict, "Email already registered")
	case errors.Is(err, models.ErrInvalidCredentials):
		return Fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	return err
}

// ErrorHandler is the Fiber application error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Fail(c, fe.Code, fe.Message)
	}
	return Fail(c, fiber.StatusInternalServerError, "Internal server error")
}
