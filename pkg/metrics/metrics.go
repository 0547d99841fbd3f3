// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// MessagesTotal tracks chat messages appended to session histories.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_messages_total",
			Help: "Total chat messages rendered by the widget",
		},
		[]string{"role"},
	)

	// EscalationsTotal tracks hand-offs to human support.
	EscalationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_escalations_total",
			Help: "Total escalations to human support",
		},
		[]string{"reason"},
	)

	// ChatRequestDuration tracks round trips to the chat endpoint.
	ChatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_request_duration_seconds",
			Help:    "Chat endpoint round-trip duration",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"outcome"},
	)

	// AssistantDuration tracks LLM completion latency.
	AssistantDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_request_duration_seconds",
			Help:    "Assistant completion duration",
			Buckets: []float64{.5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"provider", "status"},
	)

	// AssistantTokensTotal tracks tokens processed by the assistant.
	AssistantTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_tokens_total",
			Help: "Total assistant tokens processed",
		},
		[]string{"provider", "direction"},
	)

	// AlertsTotal tracks page alerts shown, by severity.
	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_alerts_total",
			Help: "Total page alerts shown",
		},
		[]string{"severity"},
	)

	// ClipboardCopiesTotal tracks clipboard copy attempts.
	ClipboardCopiesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipboard_copies_total",
			Help: "Total clipboard copy attempts",
		},
		[]string{"status"},
	)

	// WidgetSessionsActive tracks live widget sessions.
	WidgetSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "widget_sessions_active",
			Help: "Number of active widget sessions",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordChatRequest records a round trip to the chat endpoint.
func RecordChatRequest(outcome string, duration float64) {
	ChatRequestDuration.WithLabelValues(outcome).Observe(duration)
}

// RecordAssistant records metrics for an assistant completion.
func RecordAssistant(provider, status string, duration float64, tokensIn, tokensOut int) {
	AssistantDuration.WithLabelValues(provider, status).Observe(duration)
	AssistantTokensTotal.WithLabelValues(provider, "in").Add(float64(tokensIn))
	AssistantTokensTotal.WithLabelValues(provider, "out").Add(float64(tokensOut))
}
