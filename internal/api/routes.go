package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Checker-Finance/usuarios-console/internal/session"
)

// RegisterRoutes mounts health, metrics and the v1 API on app.
// nc may be nil when audit publishing is disabled.
func RegisterRoutes(app *fiber.App, nc *nats.Conn, store session.Store,
	sessions fiber.Handler,
	authHandler *AuthHandler,
	usuariosHandler *UsuariosHandler,
) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/health", func(c *fiber.Ctx) error {
		checks := map[string]string{
			"nats":     "disabled",
			"sessions": "ok",
		}
		status := "ok"
		code := fiber.StatusOK

		if nc != nil {
			checks["nats"] = "ok"
			if !nc.IsConnected() {
				checks["nats"] = "disconnected"
				status = "degraded"
				code = fiber.StatusServiceUnavailable
			} else if err := nc.FlushTimeout(1 * time.Second); err != nil {
				checks["nats"] = err.Error()
				status = "degraded"
				code = fiber.StatusServiceUnavailable
			}
		}

		healthCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := store.HealthCheck(healthCtx); err != nil {
			checks["sessions"] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
		}

		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"checks": checks,
		})
	})

	v1 := app.Group("/api/v1", sessions)
	v1.Post("/login", authHandler.Login)
	v1.Post("/logout", authHandler.Logout)
	v1.Get("/usuarios", usuariosHandler.List)
	v1.Post("/usuarios", usuariosHandler.Create)
	v1.Put("/usuarios", usuariosHandler.Update)
	v1.Delete("/usuarios/:id", usuariosHandler.Delete)
}
