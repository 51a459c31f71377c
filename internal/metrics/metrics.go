// Package metrics provides Prometheus metrics for the amp-report API.
// All metrics use the "amp" namespace and are registered with the default
// registry via promauto, so they are served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "amp"

var (
	// HTTPRequestsTotal counts requests by method, route template and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route template.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RecommendationsServed counts recommendation runs by outcome.
	// outcome: success | not_found | failed
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recommendations",
			Name:      "runs_total",
			Help:      "Total number of recommendation runs by outcome.",
		},
		[]string{"outcome"},
	)

	// RecommendationCount observes how many amenities survive ranking per run.
	RecommendationCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "recommendations",
			Name:      "results",
			Help:      "Number of recommendations returned per run.",
			Buckets:   prometheus.LinearBuckets(0, 3, 6),
		},
	)

	// ProfileConfidence observes computed tenant-profile confidence by generation method.
	ProfileConfidence = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "profiles",
			Name:      "confidence",
			Help:      "Computed tenant-profile confidence scores.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		},
		[]string{"method"},
	)

	// LLMRequestsTotal counts chat-completion calls by model, purpose and status.
	// purpose: chat | extract
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Total number of LLM API requests.",
		},
		[]string{"model", "purpose", "status"},
	)

	// LLMTokensUsed counts tokens consumed by model and type (prompt | completion).
	LLMTokensUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Total number of LLM tokens consumed.",
		},
		[]string{"model", "type"},
	)

	// LLMRequestDuration observes LLM call latency.
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "LLM request duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~1min
		},
		[]string{"model", "purpose"},
	)

	// AuthAttemptsTotal counts login and registration attempts by outcome.
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Total number of authentication attempts.",
		},
		[]string{"action", "outcome"},
	)
)
