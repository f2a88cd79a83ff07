package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"alfredoptarigan/cv-matcher/internal/models"
)

// ErrorHandler renders errors that escape the handlers, recovered panics
// included. Fiber errors keep their status; anything else is a generic 500.
func ErrorHandler(log *zap.Logger, exposeErrors bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
		}

		log.Error("unhandled error",
			zap.String("request_id", requestID(c)),
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		resp := models.ErrorResponse{Error: msgMatchFailed}
		if exposeErrors {
			resp.Detail = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}
