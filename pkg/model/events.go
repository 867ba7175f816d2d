package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Audit event types published for administrative actions.
const (
	EventLoginSucceeded = "login.succeeded"
	EventLoginRejected  = "login.rejected"
	EventLogout         = "logout"
	EventUsuarioCreated = "usuario.created"
	EventUsuarioUpdated = "usuario.updated"
	EventUsuarioDeleted = "usuario.deleted"
)

// AuditEvent is the canonical envelope published to NATS for every administrative action.
type AuditEvent struct {
	ID        uuid.UUID       `json:"id"`
	SessionID string          `json:"session_id"`
	EventType string          `json:"event_type"`
	Actor     string          `json:"actor,omitempty"`
	Version   string          `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// NewAuditEvent builds an event of the given type, encoding payload when non-nil.
func NewAuditEvent(sessionID, eventType, actor string, payload any) (*AuditEvent, error) {
	evt := &AuditEvent{
		ID:        uuid.New(),
		SessionID: sessionID,
		EventType: eventType,
		Actor:     actor,
		Version:   "1.0.0",
		Timestamp: time.Now().UTC(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		evt.Payload = data
	}
	return evt, nil
}
