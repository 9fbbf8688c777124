package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"support-router/internal/chat"
	"support-router/internal/cost"
	"support-router/internal/model"
	"support-router/internal/routing"
)

func TestObserveTurn(t *testing.T) {
	m := New(prometheus.NewRegistry(), cost.DefaultTable)

	m.ObserveTurn(chat.Turn{
		Bucket:     model.BucketLowCost,
		Action:     routing.ActionRAG,
		Confidence: 0.9,
		Elapsed:    120 * time.Millisecond,
	})
	m.ObserveTurn(chat.Turn{
		Bucket:          model.BucketLowCost,
		Action:          routing.ActionLowConfidenceFallback,
		Confidence:      0.2,
		Degraded:        true,
		RetrievalFailed: true,
	})
	m.ObserveTurn(chat.Turn{
		Bucket:     model.BucketEscalate,
		Action:     routing.ActionEscalation,
		Confidence: 0.95,
	})
	m.ObserveTurn(chat.Turn{Degraded: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("LOW_COST", "rag_generation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("UNKNOWN", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Degraded.WithLabelValues("LOW_COST")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Degraded.WithLabelValues("UNKNOWN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RetrievalFailed))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CacheHits))
	assert.InDelta(t, 0.002, testutil.ToFloat64(m.EstimatedCost.WithLabelValues("LOW_COST")), 1e-12)
	assert.InDelta(t, 0.02, testutil.ToFloat64(m.EstimatedCost.WithLabelValues("ESCALATE")), 1e-12)
	assert.Equal(t, 4, testutil.CollectAndCount(m.Requests))
}
