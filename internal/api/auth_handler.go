package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/usuarios-console/internal/login"
)

// LoginFlow is the login controller as seen by the HTTP layer.
type LoginFlow interface {
	Submit(ctx context.Context, sid, username, password string, view login.View) error
	Logout(ctx context.Context, sid string) error
}

// AuthHandler serves login and logout.
type AuthHandler struct {
	logger *zap.Logger
	flow   LoginFlow
	cookie SessionCookie
}

func NewAuthHandler(logger *zap.Logger, flow LoginFlow, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{logger: logger, flow: flow, cookie: cookie}
}

// Login submits the login form for the caller's session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	view := &login.Recorder{}
	err := h.flow.Submit(c.Context(), SessionID(c), req.Username, req.Password, view)
	if errors.Is(err, login.ErrBusy) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return err
	}

	switch {
	case len(view.Errors) > 0:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(LoginResponse{FieldErrors: view.Errors})
	case view.Alerted:
		return c.Status(fiber.StatusUnauthorized).JSON(LoginResponse{Alert: &Alert{Title: view.AlertTitle, Icon: "error"}})
	default:
		if view.SessionID != "" {
			h.cookie.Issue(c, view.SessionID)
		}
		return c.Status(fiber.StatusOK).JSON(LoginResponse{Route: view.Route})
	}
}

// Logout clears the caller's session token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.flow.Logout(c.Context(), SessionID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
