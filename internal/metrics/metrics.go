package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tracks outbound calls to the remote user-management API.
	RemoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_api_requests_total",
			Help: "Total number of remote API requests made (by component, method and status).",
		},
		[]string{"component", "method", "status"},
	)

	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "remote_api_request_duration_seconds",
			Help:    "Duration of remote API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
		[]string{"component", "method"},
	)

	// Login outcomes: ok | rejected | invalid | busy | transport_error.
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login submissions by outcome.",
		},
		[]string{"result"},
	)

	AuditEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_total",
			Help: "Audit events published to NATS.",
		},
		[]string{"subject", "result"},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_errors_total",
			Help: "Count of errors by component.",
		},
		[]string{"component", "reason"},
	)
)

// ObserveRemoteCall records one outbound request. status 0 means no response was received.
func ObserveRemoteCall(component, method string, status int, start time.Time) {
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	RemoteRequestsTotal.WithLabelValues(component, method, label).Inc()
	RemoteRequestDuration.WithLabelValues(component, method).Observe(time.Since(start).Seconds())
}

func IncLogin(result string) {
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

func IncAuditEvent(subject, result string) {
	AuditEventsTotal.WithLabelValues(subject, result).Inc()
}

func IncError(component, reason string) {
	ErrorsTotal.WithLabelValues(component, reason).Inc()
}
