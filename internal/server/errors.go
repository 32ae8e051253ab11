package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/ecfilm/catalog-api/internal/auth"
)

// NewErrorHandler is the single choke point where errors become responses.
// Rich errors carry their HTTP status in Code; anything else is a 500 with
// the generic server message so internals never leak to clients.
func NewErrorHandler(logger auth.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
				return respondError(c, fiberErr.Code, fiberErr.Message)
			}

			richErr = errors.Wrap(err, errors.CategoryInternal, auth.MsgServerError).
				WithCode(errors.CodeInternal)
		}

		status := richErr.Code
		if status < fiber.StatusBadRequest || status > 599 {
			status = fiber.StatusInternalServerError
		}

		message := richErr.Message
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed: %v", err)
			message = auth.MsgServerError
		}

		return respondError(c, status, message)
	}
}
