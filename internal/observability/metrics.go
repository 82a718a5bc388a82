package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Session metrics
	SessionTokensIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_tokens_issued_total",
			Help: "Session tokens minted, by reason (signin, refresh)",
		},
		[]string{"reason"},
	)

	SessionResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_resolutions_total",
			Help: "Per-request session resolution outcomes",
		},
		[]string{"state"},
	)

	AuthGateDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_gate_decisions_total",
			Help: "Auth gate decisions by policy and outcome (continue, redirect)",
		},
		[]string{"policy", "outcome"},
	)

	SignInAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signin_attempts_total",
			Help: "Sign-in POST outcomes",
		},
		[]string{"result"},
	)

	IdentityVerifyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "identity_verify_duration_seconds",
			Help:    "Latency of identity provider credential verification",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)
)
