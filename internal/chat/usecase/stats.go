package usecase

import (
	"context"
	"sync"
	"time"

	"support-router/internal/chat"
	"support-router/internal/cost"
	"support-router/internal/model"
	"support-router/internal/routing"
)

// statsTracker accumulates per-turn counters. Guarded by mu.
type statsTracker struct {
	mu        sync.Mutex
	startedAt time.Time
	threshold float64
	costs     cost.Table

	total          int
	byBucket       map[model.Bucket]int
	byAction       map[routing.Action]int
	degraded       int
	unclassified   int
	retrievalFails int
	cacheHits      int

	classified    int
	confidenceSum float64
	lowConf       int
	highConf      int
}

func newStatsTracker(threshold float64, costs cost.Table) *statsTracker {
	return &statsTracker{
		startedAt: time.Now().UTC(),
		threshold: threshold,
		costs:     costs,
		byBucket:  make(map[model.Bucket]int),
		byAction:  make(map[routing.Action]int),
	}
}

func (s *statsTracker) record(t chat.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	if t.Degraded {
		s.degraded++
	}
	if t.RetrievalFailed {
		s.retrievalFails++
	}
	if t.Cached {
		s.cacheHits++
	}
	if t.Bucket == model.BucketUnknown {
		s.unclassified++
		return
	}

	s.byBucket[t.Bucket]++
	s.byAction[t.Action]++
	s.classified++
	s.confidenceSum += t.Confidence
	if t.Confidence < s.threshold {
		s.lowConf++
	}
	if t.Confidence >= chat.HighConfidence {
		s.highConf++
	}
}

func (s *statsTracker) snapshot() chat.StatsOutput {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := chat.StatsOutput{
		StartedAt:      s.startedAt,
		TotalRequests:  s.total,
		ByBucket:       make(map[model.Bucket]int, len(model.Buckets)),
		ByAction:       make(map[routing.Action]int, len(s.byAction)),
		Degraded:       s.degraded,
		Unclassified:   s.unclassified,
		RetrievalFails: s.retrievalFails,
		CacheHits:      s.cacheHits,
		LowConfidence:  s.lowConf,
		HighConfidence: s.highConf,
	}
	for _, b := range model.Buckets {
		out.ByBucket[b] = s.byBucket[b]
	}
	for a, n := range s.byAction {
		out.ByAction[a] = n
	}
	if s.classified > 0 {
		out.AverageConfidence = s.confidenceSum / float64(s.classified)
	}

	sum := s.costs.Summarize(out.ByBucket)
	out.EstimatedCost = sum.WithRouting
	out.BaselineCost = sum.WithoutRouting
	out.Savings = sum.Savings
	out.SavingsPercent = sum.SavingsPercent
	return out
}

// Stats reports counters since startup.
func (uc *implUseCase) Stats(ctx context.Context) chat.StatsOutput {
	return uc.stats.snapshot()
}
