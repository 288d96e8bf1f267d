// Package metrics exposes Prometheus counters for chat traffic, cache
// effectiveness, and provider usage.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCount tracks chat requests by outcome: answered, rejected,
	// cached, or error.
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faqbot_requests_total",
			Help: "The total number of chat requests by outcome",
		},
		[]string{"outcome"},
	)

	// RequestLatency tracks end-to-end chat latency.
	RequestLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "faqbot_request_latency_seconds",
			Help:    "The end-to-end duration of chat requests in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// ProviderAnswers tracks which provider produced each answer.
	ProviderAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faqbot_provider_answers_total",
			Help: "The total number of answers by provider",
		},
		[]string{"provider"},
	)

	// GateRejections tracks gate rejections by the rule that fired.
	GateRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faqbot_gate_rejections_total",
			Help: "The total number of questions rejected by the relevance gate",
		},
		[]string{"rule"},
	)

	// CacheOps tracks cache lookups by result: hit or miss.
	CacheOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faqbot_cache_ops_total",
			Help: "The total number of answer cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordRequest records one finished chat request.
func RecordRequest(outcome string, seconds float64) {
	if outcome == "" {
		outcome = "unknown"
	}
	RequestCount.WithLabelValues(outcome).Inc()
	RequestLatency.Observe(seconds)
}

// RecordProviderAnswer records which provider answered.
func RecordProviderAnswer(provider string) {
	ProviderAnswers.WithLabelValues(provider).Inc()
}

// RecordGateRejection records a rejected question by gate rule.
func RecordGateRejection(rule string) {
	GateRejections.WithLabelValues(rule).Inc()
}

// RecordCacheHit records a cache lookup result.
func RecordCacheHit(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheOps.WithLabelValues(result).Inc()
}

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
