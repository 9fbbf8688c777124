// Package metrics exposes routing counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"support-router/internal/chat"
	"support-router/internal/cost"
)

const namespace = "support_router"

// Metrics implements the chat usecase Observer.
type Metrics struct {
	Requests        *prometheus.CounterVec
	Degraded        *prometheus.CounterVec
	RetrievalFailed prometheus.Counter
	CacheHits       prometheus.Counter
	Confidence      prometheus.Histogram
	Duration        *prometheus.HistogramVec
	EstimatedCost   *prometheus.CounterVec

	costs cost.Table
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer, costs cost.Table) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		costs: costs,
		Requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of answered queries by bucket and action",
			},
			[]string{"bucket", "action"},
		),
		Degraded: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "degraded_total",
				Help:      "Total number of queries answered with a fallback message",
			},
			[]string{"bucket"},
		),
		RetrievalFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieval_failures_total",
			Help:      "Total number of LOW_COST queries generated without context after a retrieval error",
		}),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of LOW_COST answers served from the response cache",
		}),
		Confidence: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classifier_confidence",
			Help:      "Distribution of classifier confidence",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
		Duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of query handling in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"bucket"},
		),
		EstimatedCost: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "estimated_cost_usd_total",
				Help:      "Estimated serving cost in USD by bucket",
			},
			[]string{"bucket"},
		),
	}
	return m
}

// ObserveTurn records one finished turn.
func (m *Metrics) ObserveTurn(t chat.Turn) {
	bucket := t.Bucket.String()

	m.Requests.WithLabelValues(bucket, string(t.Action)).Inc()
	m.Duration.WithLabelValues(bucket).Observe(t.Elapsed.Seconds())
	if t.Degraded {
		m.Degraded.WithLabelValues(bucket).Inc()
	}
	if t.RetrievalFailed {
		m.RetrievalFailed.Inc()
	}
	if t.Cached {
		m.CacheHits.Inc()
	}
	if t.Action != "" {
		m.Confidence.Observe(t.Confidence)
	}
	m.EstimatedCost.WithLabelValues(bucket).Add(m.costs.PerRequest(t.Bucket))
}
