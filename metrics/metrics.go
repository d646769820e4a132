// Package metrics provides Prometheus metrics for the GROWI MCP server.
// It tracks tool call counts, latencies, wiki API performance, and error rates.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "growi_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// WikiAPILatency measures GROWI API call latency by dialect and operation
	WikiAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "wiki_api_latency_seconds",
		Help:      "GROWI API call latency by API version and operation",
		Buckets:   prometheus.DefBuckets,
	}, []string{"version", "operation"})

	// WikiAPIRequestsTotal counts GROWI API requests
	WikiAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_api_requests_total",
		Help:      "Total GROWI API requests by API version, operation and status",
	}, []string{"version", "operation", "status"})

	// WikiAPIErrors counts GROWI API errors by normalized error kind
	WikiAPIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_api_errors_total",
		Help:      "GROWI API errors by API version, operation and error kind",
	}, []string{"version", "operation", "kind"})

	// AuthFailures counts authentication failures
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_failures_total",
		Help:      "Authentication failure count by reason",
	}, []string{"reason"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// TransferBytes tracks attachment payload sizes moved in either direction
	TransferBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "attachment_transfer_bytes",
		Help:      "Attachment bytes transferred by direction",
		Buckets:   []float64{1000, 10000, 100000, 1000000, 10000000, 100000000},
	}, []string{"direction"})
)

// RecordRequest records a completed tool call with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a GROWI API call
func RecordAPICall(version, operation string, duration float64, success bool, errorKind string) {
	status := "success"
	if !success {
		status = "error"
	}
	WikiAPIRequestsTotal.WithLabelValues(version, operation, status).Inc()
	WikiAPILatency.WithLabelValues(version, operation).Observe(duration)
	if errorKind != "" {
		WikiAPIErrors.WithLabelValues(version, operation, errorKind).Inc()
	}
}

// RecordTransfer records attachment bytes moved. Direction is "upload" or
// "download".
func RecordTransfer(direction string, bytes int64) {
	TransferBytes.WithLabelValues(direction).Observe(float64(bytes))
}
