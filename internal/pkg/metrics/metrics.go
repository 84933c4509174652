// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimitExceededTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_exceeded_total",
			Help: "Total number of requests rejected due to rate limiting",
		},
		[]string{"method", "route"},
	)

	DomainEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_events_total",
			Help: "Domain events emitted after commit, by name and publish outcome",
		},
		[]string{"event", "outcome"},
	)

	CashClosingsAuditedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cash_closings_audited_total",
			Help: "Cash closings checked by the audit job",
		},
	)

	CashClosingsCorrectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cash_closings_corrected_total",
			Help: "Cash closings whose stored aggregates had drifted from their details",
		},
	)
)
