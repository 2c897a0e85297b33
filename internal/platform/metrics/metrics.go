// Package metrics holds the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP latency per route pattern and status code.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fieldproof_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"route", "status"},
	)

	// PermissionDenials counts 403 responses per route pattern. A spike on
	// one route usually means a client integration lost its role headers.
	PermissionDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldproof_permission_denials_total",
			Help: "Requests rejected by the access policy",
		},
		[]string{"route"},
	)

	// StateConflicts counts rejected transitions, duplicate assignments and
	// lost review races.
	StateConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldproof_state_conflicts_total",
			Help: "Mutations rejected by state or uniqueness rules",
		},
		[]string{"kind"},
	)

	// RateLimited counts requests dropped by the mutation rate limiter.
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fieldproof_rate_limited_total",
			Help: "Mutating requests rejected by the rate limiter",
		},
	)
)

// ObserveRequest records one served request.
func ObserveRequest(route, status string, seconds float64) {
	RequestDuration.WithLabelValues(route, status).Observe(seconds)
}
