package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/usuarios-console/internal/httpclient"
	"github.com/Checker-Finance/usuarios-console/internal/metrics"
)

// ErrorHandler is the outer handler for errors the handlers re-raise.
// Remote transport failures map to 502; everything else keeps its fiber code or 500.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var te *httpclient.TransportError
		if errors.As(err, &te) {
			logger.Error("api.upstream_failed",
				zap.String("path", c.Path()),
				zap.String("component", te.Component),
				zap.Int("upstream_status", te.Status),
				zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":          "upstream request failed",
				"upstreamStatus": te.Status,
			})
		}

		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			metrics.IncError("api", "unhandled")
			logger.Error("api.unhandled_error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
