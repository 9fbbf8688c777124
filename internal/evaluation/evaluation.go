// Package evaluation runs a dry-run of classification and routing over a
// message sample, without retrieval or generation, and prices the result.
package evaluation

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"support-router/internal/chat"
	"support-router/internal/classifier"
	"support-router/internal/cost"
	"support-router/internal/model"
	"support-router/internal/routing"
)

const (
	DefaultConcurrency = 8
	DefaultSamples     = 10
)

// Sample is one message, optionally labelled with its expected intent.
type Sample struct {
	Text  string
	Label model.Intent
}

// Decision is the routing outcome of one sample.
type Decision struct {
	Sample
	Intent     model.Intent
	Confidence float64
	Bucket     model.Bucket
	Action     routing.Action
	CostTier   model.CostTier
	Err        error
}

// Config tunes a run.
type Config struct {
	Concurrency int
	ShowSamples int
	Costs       cost.Table
	Volumes     []int
}

// Report aggregates a dry-run.
type Report struct {
	Messages     int
	Elapsed      time.Duration
	Threshold    float64
	ByBucket     map[model.Bucket]int
	ByAction     map[routing.Action]int
	Unclassified int

	AverageConfidence float64
	LowConfidence     int
	HighConfidence    int

	// Labelled and Correct count samples that carried a known label.
	Labelled int
	Correct  int

	Cost        cost.Summary
	Costs       cost.Table
	Projections []cost.Projection
	Samples     []Decision
}

// Accuracy is Correct/Labelled, or 0 without labels.
func (r Report) Accuracy() float64 {
	if r.Labelled == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Labelled)
}

// Run classifies and routes every sample concurrently. Classifier failures
// are counted as unclassified; only cancellation aborts the run.
func Run(ctx context.Context, clf classifier.Classifier, policy *routing.Policy, samples []Sample, cfg Config) (Report, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.ShowSamples < 0 {
		cfg.ShowSamples = 0
	}
	if cfg.Volumes == nil {
		cfg.Volumes = cost.ProjectionVolumes
	}

	started := time.Now()
	decisions := make([]Decision, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, s := range samples {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d := Decision{Sample: s}
			pred, err := clf.Classify(gctx, s.Text)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				d.Err = err
				decisions[i] = d
				return nil
			}
			dec := policy.Decide(pred.Intent, pred.Confidence)
			d.Intent = pred.Intent
			d.Confidence = pred.Confidence
			d.Bucket = dec.Bucket
			d.Action = dec.Action
			d.CostTier = dec.CostTier
			decisions[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	r := aggregate(decisions, policy.Threshold(), cfg)
	r.Elapsed = time.Since(started)
	return r, nil
}

func aggregate(decisions []Decision, threshold float64, cfg Config) Report {
	r := Report{
		Messages:  len(decisions),
		Threshold: threshold,
		ByBucket:  make(map[model.Bucket]int, len(model.Buckets)),
		ByAction:  make(map[routing.Action]int),
		Costs:     cfg.Costs,
	}

	var sum float64
	classified := 0
	for _, d := range decisions {
		if d.Err != nil {
			r.Unclassified++
			continue
		}
		classified++
		r.ByBucket[d.Bucket]++
		r.ByAction[d.Action]++
		sum += d.Confidence
		if d.Confidence < threshold {
			r.LowConfidence++
		}
		if d.Confidence >= chat.HighConfidence {
			r.HighConfidence++
		}
		if d.Label.Known() {
			r.Labelled++
			if d.Label == d.Intent {
				r.Correct++
			}
		}
	}
	if classified > 0 {
		r.AverageConfidence = sum / float64(classified)
	}

	r.Cost = cfg.Costs.Summarize(r.ByBucket)
	r.Projections = r.Cost.Project(cfg.Volumes)

	n := min(cfg.ShowSamples, len(decisions))
	r.Samples = append([]Decision(nil), decisions[:n]...)
	return r
}

// ActionCount pairs an action with its count.
type ActionCount struct {
	Action routing.Action
	Count  int
}

// ActionsByCount returns the actions ordered by count descending, then name.
func (r Report) ActionsByCount() []ActionCount {
	out := make([]ActionCount, 0, len(r.ByAction))
	for a, n := range r.ByAction {
		out = append(out, ActionCount{Action: a, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Action < out[j].Action
	})
	return out
}
