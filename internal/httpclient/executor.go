package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/usuarios-console/internal/metrics"
	"github.com/Checker-Finance/usuarios-console/internal/rate"
)

// ErrEmptyBody is wrapped by TransportError when a 2xx response carries no envelope.
var ErrEmptyBody = errors.New("empty response body")

// TransportError reports a failure below the application envelope: the request
// never got a response, the server answered with a non-2xx status, or the body
// could not be decoded. Status is 0 when no response was received.
type TransportError struct {
	Component string
	Method    string
	URL       string
	Status    int
	Body      []byte
	Err       error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("%s %s %s: %v", e.Component, e.Method, e.URL, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s %s %s: status %d: %v", e.Component, e.Method, e.URL, e.Status, e.Err)
	default:
		return fmt.Sprintf("%s %s %s: status %d", e.Component, e.Method, e.URL, e.Status)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Executor issues single-shot HTTP requests and JSON-decodes their responses.
// It never retries; timeouts are whatever the supplied http.Client enforces.
type Executor struct {
	logger    *zap.Logger
	rateMgr   *rate.Manager
	http      *http.Client
	component string
}

// New creates an Executor. rateMgr may be nil. component tags logs and metrics.
func New(logger *zap.Logger, rateMgr *rate.Manager, httpClient *http.Client, component string) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Executor{
		logger:    logger,
		rateMgr:   rateMgr,
		http:      httpClient,
		component: component,
	}
}

// DoJSON executes req once and decodes the response body into out.
// Every failure is returned as *TransportError.
func (e *Executor) DoJSON(ctx context.Context, req *http.Request, rateLimitKey string, out any) error {
	if err := e.rateMgr.Wait(ctx, rateLimitKey); err != nil {
		return e.fail(req, 0, nil, fmt.Errorf("rate limit wait: %w", err))
	}

	start := time.Now()
	resp, err := e.http.Do(req)
	if err != nil {
		metrics.ObserveRemoteCall(e.component, req.Method, 0, start)
		e.logger.Warn(e.component+".http_failed",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return e.fail(req, 0, nil, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	metrics.ObserveRemoteCall(e.component, req.Method, resp.StatusCode, start)
	if err != nil {
		return e.fail(req, resp.StatusCode, nil, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.logger.Warn(e.component+".non_2xx",
			zap.Int("status", resp.StatusCode),
			zap.String("url", req.URL.String()),
			zap.String("body", string(body)),
			zap.Duration("latency", time.Since(start)))
		return e.fail(req, resp.StatusCode, body, nil)
	}

	if out != nil {
		if len(body) == 0 {
			return e.fail(req, resp.StatusCode, body, ErrEmptyBody)
		}
		if err := json.Unmarshal(body, out); err != nil {
			e.logger.Warn(e.component+".decode_failed",
				zap.Error(err),
				zap.String("url", req.URL.String()),
				zap.String("body", string(body)))
			return e.fail(req, resp.StatusCode, body, fmt.Errorf("decode failed: %w", err))
		}
	}

	e.logger.Debug(e.component+".http_success",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	return nil
}

func (e *Executor) fail(req *http.Request, status int, body []byte, err error) error {
	metrics.IncError(e.component, "transport")
	return &TransportError{
		Component: e.component,
		Method:    req.Method,
		URL:       req.URL.String(),
		Status:    status,
		Body:      body,
		Err:       err,
	}
}
