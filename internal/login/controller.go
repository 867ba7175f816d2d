package login

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Checker-Finance/usuarios-console/internal/forms"
	"github.com/Checker-Finance/usuarios-console/internal/metrics"
	"github.com/Checker-Finance/usuarios-console/internal/session"
	"github.com/Checker-Finance/usuarios-console/pkg/model"
	"github.com/Checker-Finance/usuarios-console/pkg/utils"
)

// ListingRoute is where a successful login navigates to.
const ListingRoute = "listar"

const (
	loadingTitle = "Autenticando"
	loadingText  = "Se está realizando el proceso de autenticación, por favor espere"
)

// ErrBusy is returned when the session already has a login in flight.
var ErrBusy = errors.New("login already in progress")

// Authenticator exchanges credentials for a token envelope.
type Authenticator interface {
	Login(ctx context.Context, creds model.LoginUser) (*model.GeneralResponse[model.LoginResponse], error)
}

// Auditor records administrative actions. Publishing failures never fail the action.
type Auditor interface {
	Publish(ctx context.Context, evt *model.AuditEvent) error
}

// View receives the presentation side effects of a submission.
type View interface {
	FieldErrors(errs map[string]string)
	ShowLoading(title, text string)
	HideLoading()
	Alert(title string)
	// Rebind tells the browser its session now lives under sid.
	Rebind(sid string)
	Navigate(route string)
}

// Form is the login form: both fields are required.
var Form = forms.Form{Fields: []forms.Field{
	{Key: "username", Nombre: "username", Constraints: []forms.Constraint{forms.Required()}},
	{Key: "password", Nombre: "password", Constraints: []forms.Constraint{forms.Required()}},
}}

// Controller drives the login flow for every browser session.
type Controller struct {
	logger   *zap.Logger
	auth     Authenticator
	sessions session.Store
	auditor  Auditor

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewController wires the login flow. auditor may be nil.
func NewController(logger *zap.Logger, auth Authenticator, sessions session.Store, auditor Auditor) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		logger:   logger,
		auth:     auth,
		sessions: sessions,
		auditor:  auditor,
		inFlight: make(map[string]struct{}),
	}
}

// Submit runs one login attempt for session sid.
//
// Invalid input reports field errors to view and returns nil without calling the
// remote API. A rejected login alerts the server message and leaves the session
// untouched. Transport failures clear the loading state and are returned as is.
// A successful login never reuses sid: the token is stored under a fresh session
// id handed to view.Rebind, and sid is cleared.
func (c *Controller) Submit(ctx context.Context, sid, username, password string, view View) error {
	if errs := Form.Validate(map[string]string{"username": username, "password": password}); len(errs) > 0 {
		metrics.IncLogin("invalid")
		view.FieldErrors(errs)
		return nil
	}

	if !c.acquire(sid) {
		metrics.IncLogin("busy")
		return ErrBusy
	}
	defer c.release(sid)

	view.ShowLoading(loadingTitle, loadingText)
	resp, err := c.auth.Login(ctx, model.LoginUser{UserName: username, Password: password})
	view.HideLoading()
	if err != nil {
		metrics.IncLogin("transport_error")
		return err
	}

	if resp.HasError {
		metrics.IncLogin("rejected")
		c.logger.Error("login.failed",
			zap.String("user", username),
			zap.String("message_exception", resp.MessageException))
		c.audit(ctx, session.NewHolder(c.sessions, sid), model.EventLoginRejected, username)
		view.Alert(resp.MessageError)
		return nil
	}

	data, _ := resp.Payload()
	next := session.NewHolder(c.sessions, session.NewID())
	if err := next.Save(ctx, session.Data{Token: data.Token, User: username}); err != nil {
		metrics.IncError("login", "session_write")
		return err
	}
	if err := session.NewHolder(c.sessions, sid).Clear(ctx); err != nil {
		c.logger.Warn("login.clear_previous_failed",
			zap.String("session", session.Fingerprint(sid)),
			zap.Error(err))
	}

	metrics.IncLogin("ok")
	c.logger.Info("login.succeeded",
		zap.String("user", username),
		zap.String("session", next.Fingerprint()),
		zap.String("token", utils.MaskToken(data.Token)))
	c.audit(ctx, next, model.EventLoginSucceeded, username)
	view.Rebind(next.SessionID())
	view.Navigate(ListingRoute)
	return nil
}

// Logout drops the record held by session sid.
func (c *Controller) Logout(ctx context.Context, sid string) error {
	h := session.NewHolder(c.sessions, sid)
	user, _ := h.User(ctx)
	if err := h.Clear(ctx); err != nil {
		return err
	}
	c.audit(ctx, h, model.EventLogout, user)
	return nil
}

// InFlight reports whether sid has a login outstanding.
func (c *Controller) InFlight(sid string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inFlight[sid]
	return ok
}

func (c *Controller) acquire(sid string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[sid]; busy {
		return false
	}
	c.inFlight[sid] = struct{}{}
	return true
}

func (c *Controller) release(sid string) {
	c.mu.Lock()
	delete(c.inFlight, sid)
	c.mu.Unlock()
}

func (c *Controller) audit(ctx context.Context, h *session.Holder, eventType, actor string) {
	if c.auditor == nil {
		return
	}
	evt, err := model.NewAuditEvent(h.Fingerprint(), eventType, actor, nil)
	if err == nil {
		err = c.auditor.Publish(ctx, evt)
	}
	if err != nil {
		c.logger.Warn("login.audit_failed", zap.String("event_type", eventType), zap.Error(err))
	}
}
