package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/usuarios-console/internal/login"
	"github.com/Checker-Finance/usuarios-console/internal/session"
	"github.com/Checker-Finance/usuarios-console/pkg/model"
)

// UsuariosService is the users resource client bound to one session.
type UsuariosService interface {
	ListarUsuarios(ctx context.Context) (*model.GeneralResponse[[]model.Usuario], error)
	Agregar(ctx context.Context, u model.Usuario) (*model.GeneralResponse[bool], error)
	Modificar(ctx context.Context, u model.Usuario) (*model.GeneralResponse[bool], error)
	Borrar(ctx context.Context, id int64) (*model.GeneralResponse[bool], error)
}

// UsuariosFactory returns a client whose requests carry the token of session sid.
type UsuariosFactory func(sid string) UsuariosService

// UsuariosHandler proxies CRUD calls to the remote API. Envelopes reach the
// browser through GeneralResponse.Public.
type UsuariosHandler struct {
	logger   *zap.Logger
	clients  UsuariosFactory
	sessions session.Store
	auditor  login.Auditor
}

func NewUsuariosHandler(logger *zap.Logger, clients UsuariosFactory, sessions session.Store, auditor login.Auditor) *UsuariosHandler {
	return &UsuariosHandler{logger: logger, clients: clients, sessions: sessions, auditor: auditor}
}

func (h *UsuariosHandler) List(c *fiber.Ctx) error {
	resp, err := h.clients(SessionID(c)).ListarUsuarios(c.Context())
	if err != nil {
		return err
	}
	h.logEnvelope("listar", resp.HasError, resp.MessageException)
	return c.JSON(resp.Public())
}

func (h *UsuariosHandler) Create(c *fiber.Ctx) error {
	var u model.Usuario
	if err := c.BodyParser(&u); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resp, err := h.clients(SessionID(c)).Agregar(c.Context(), u)
	if err != nil {
		return err
	}
	h.afterWrite(c, "agregar", model.EventUsuarioCreated, resp, u.Redacted())
	return c.JSON(resp.Public())
}

func (h *UsuariosHandler) Update(c *fiber.Ctx) error {
	var u model.Usuario
	if err := c.BodyParser(&u); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resp, err := h.clients(SessionID(c)).Modificar(c.Context(), u)
	if err != nil {
		return err
	}
	h.afterWrite(c, "actualizar", model.EventUsuarioUpdated, resp, u.Redacted())
	return c.JSON(resp.Public())
}

func (h *UsuariosHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a positive integer"})
	}

	resp, err := h.clients(SessionID(c)).Borrar(c.Context(), int64(id))
	if err != nil {
		return err
	}
	h.afterWrite(c, "borrar", model.EventUsuarioDeleted, resp, fiber.Map{"id": id})
	return c.JSON(resp.Public())
}

func (h *UsuariosHandler) afterWrite(c *fiber.Ctx, op, eventType string, resp *model.GeneralResponse[bool], payload any) {
	h.logEnvelope(op, resp.HasError, resp.MessageException)
	if h.auditor == nil || !model.Succeeded(resp) {
		return
	}
	sess := session.NewHolder(h.sessions, SessionID(c))
	actor, err := sess.User(c.Context())
	if err != nil {
		h.logger.Warn("usuarios.actor_lookup_failed", zap.String("session", sess.Fingerprint()), zap.Error(err))
	}
	evt, err := model.NewAuditEvent(sess.Fingerprint(), eventType, actor, payload)
	if err == nil {
		err = h.auditor.Publish(c.Context(), evt)
	}
	if err != nil {
		h.logger.Warn("usuarios.audit_failed", zap.String("op", op), zap.Error(err))
	}
}

// logEnvelope logs the diagnostic of an error envelope; the user-facing message
// travels to the browser inside the envelope.
func (h *UsuariosHandler) logEnvelope(op string, hasError bool, exception string) {
	if hasError {
		h.logger.Error("usuarios."+op+".failed", zap.String("message_exception", exception))
	}
}
