package serverutils

import (
	"errors"

	"collectible-documenter-be/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the apperr taxonomy onto HTTP statuses:
// Unauthorized 401, Validation 400, NotFound 404, Transport 502, anything
// else 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if kind, ok := apperr.KindOf(err); ok {
			var status int
			switch kind {
			case apperr.KindUnauthorized:
				status = fiber.StatusUnauthorized
			case apperr.KindValidation:
				status = fiber.StatusBadRequest
			case apperr.KindNotFound:
				status = fiber.StatusNotFound
			case apperr.KindTransport:
				status = fiber.StatusBadGateway
			default:
				status = fiber.StatusInternalServerError
			}
			return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
