package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// Data is what a browser session holds. The zero value is an anonymous session.
type Data struct {
	Token string `json:"token"`
	User  string `json:"user,omitempty"`
}

// Store persists one Data record per browser session.
// Load returns the zero Data without error when the session holds nothing.
type Store interface {
	Load(ctx context.Context, sid string) (Data, error)
	Save(ctx context.Context, sid string, data Data) error
	Clear(ctx context.Context, sid string) error
	HealthCheck(ctx context.Context) error
}

// TokenSource supplies the token attached to outbound requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.New().String()
}

// ValidID reports whether sid has the canonical form NewID produces.
func ValidID(sid string) bool {
	id, err := uuid.Parse(sid)
	return err == nil && id.String() == sid
}

// Fingerprint identifies a session in logs and events without revealing the id,
// which is the browser's bearer credential.
func Fingerprint(sid string) string {
	sum := sha256.Sum256([]byte(sid))
	return hex.EncodeToString(sum[:8])
}

// Holder binds a Store to a single session id.
type Holder struct {
	store Store
	sid   string
}

func NewHolder(store Store, sid string) *Holder {
	return &Holder{store: store, sid: sid}
}

func (h *Holder) SessionID() string { return h.sid }

// Fingerprint returns Fingerprint of the bound session id.
func (h *Holder) Fingerprint() string { return Fingerprint(h.sid) }

// Token returns the token currently held by the session.
func (h *Holder) Token(ctx context.Context) (string, error) {
	d, err := h.store.Load(ctx, h.sid)
	return d.Token, err
}

// User returns the user name recorded at login, "" for anonymous sessions.
func (h *Holder) User(ctx context.Context) (string, error) {
	d, err := h.store.Load(ctx, h.sid)
	return d.User, err
}

// Save replaces the session record.
func (h *Holder) Save(ctx context.Context, data Data) error {
	return h.store.Save(ctx, h.sid, data)
}

// Clear drops the session record (logout).
func (h *Holder) Clear(ctx context.Context) error {
	return h.store.Clear(ctx, h.sid)
}
