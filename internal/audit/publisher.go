package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/Checker-Finance/usuarios-console/internal/metrics"
	"github.com/Checker-Finance/usuarios-console/pkg/model"
)

// jetStream is the subset of nats.JetStreamContext the publisher needs.
type jetStream interface {
	PublishMsg(m *nats.Msg, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// Publisher sends audit events to a JetStream subject.
type Publisher struct {
	js      jetStream
	subject string
	service string
	logger  *zap.Logger
}

// New creates a Publisher and makes sure stream captures subject.
func New(nc *nats.Conn, subject, stream, service string, logger *zap.Logger) (*Publisher, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, err
	}

	if _, err := js.StreamInfo(stream); err != nil {
		if !errors.Is(err, nats.ErrStreamNotFound) {
			return nil, fmt.Errorf("stream info %s: %w", stream, err)
		}
		if _, err := js.AddStream(&nats.StreamConfig{
			Name:     stream,
			Subjects: []string{subject},
		}); err != nil {
			return nil, fmt.Errorf("create stream %s: %w", stream, err)
		}
	}

	return newPublisher(js, subject, service, logger), nil
}

func newPublisher(js jetStream, subject, service string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{js: js, subject: subject, service: service, logger: logger}
}

// Publish serializes evt and publishes it with routing headers.
func (p *Publisher) Publish(ctx context.Context, evt *model.AuditEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		metrics.IncError("audit", "marshal_failed")
		return err
	}

	msg := &nats.Msg{
		Subject: p.subject,
		Data:    data,
		Header: nats.Header{
			"event_type":   []string{evt.EventType},
			"event_id":     []string{evt.ID.String()},
			"service":      []string{p.service},
			"content_type": []string{"application/json"},
		},
	}

	start := time.Now()
	if _, err := p.js.PublishMsg(msg, nats.Context(ctx)); err != nil {
		p.logger.Error("audit.publish_failed",
			zap.String("subject", p.subject),
			zap.String("event_type", evt.EventType),
			zap.Error(err))
		metrics.IncAuditEvent(p.subject, "error")
		return err
	}

	p.logger.Debug("audit.publish_success",
		zap.String("subject", p.subject),
		zap.String("event_type", evt.EventType),
		zap.Duration("elapsed", time.Since(start)))
	metrics.IncAuditEvent(p.subject, "ok")
	return nil
}

// Nop discards every event. Used when NATS is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, *model.AuditEvent) error { return nil }
