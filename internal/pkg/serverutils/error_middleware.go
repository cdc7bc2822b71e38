package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pdf-extractor-be/pkg/extraction"
)

// ErrorHandlerMiddleware converts errors bubbled out of controllers into
// the response envelope. Nothing is swallowed: every failure ends in a
// user-visible message.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		if kind := extraction.KindOf(err); kind != 0 {
			code := statusForExtractionKind(kind)
			return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}

func statusForExtractionKind(kind extraction.Kind) int {
	switch kind {
	case extraction.KindAuth:
		return fiber.StatusBadGateway
	case extraction.KindQuota:
		return fiber.StatusTooManyRequests
	case extraction.KindTransient:
		return fiber.StatusGatewayTimeout
	case extraction.KindMalformed:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
