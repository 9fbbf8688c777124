// Package cost estimates serving spend per bucket and the savings against
// sending every query down the escalation path.
package cost

import (
	"support-router/config"
	"support-router/internal/model"
)

// Table is the estimated USD cost of one request per bucket.
type Table struct {
	ZeroCost float64
	LowCost  float64
	Escalate float64
}

// DefaultTable mirrors the defaults in config.
var DefaultTable = Table{ZeroCost: 0, LowCost: 0.001, Escalate: 0.02}

// ProjectionVolumes are the monthly request volumes reports extrapolate to.
var ProjectionVolumes = []int{10_000, 50_000, 100_000, 500_000}

func FromConfig(cfg config.CostConfig) Table {
	return Table{ZeroCost: cfg.ZeroCost, LowCost: cfg.LowCost, Escalate: cfg.Escalate}
}

// PerRequest returns the cost of one request in b. Unknown buckets cost nothing.
func (t Table) PerRequest(b model.Bucket) float64 {
	switch b {
	case model.BucketZeroCost:
		return t.ZeroCost
	case model.BucketLowCost:
		return t.LowCost
	case model.BucketEscalate:
		return t.Escalate
	}
	return 0
}

// Summary compares routed spend with the all-escalate baseline.
type Summary struct {
	Requests       int
	WithRouting    float64
	WithoutRouting float64
	Savings        float64
	SavingsPercent float64
	ByBucket       map[model.Bucket]float64
}

// Summarize prices per-bucket request counts.
func (t Table) Summarize(counts map[model.Bucket]int) Summary {
	s := Summary{ByBucket: make(map[model.Bucket]float64, len(model.Buckets))}
	for _, b := range model.Buckets {
		n := counts[b]
		s.Requests += n
		c := float64(n) * t.PerRequest(b)
		s.ByBucket[b] = c
		s.WithRouting += c
	}
	s.WithoutRouting = float64(s.Requests) * t.Escalate
	s.Savings = s.WithoutRouting - s.WithRouting
	if s.WithoutRouting > 0 {
		s.SavingsPercent = s.Savings / s.WithoutRouting * 100
	}
	return s
}

// Projection is a Summary scaled to a monthly volume.
type Projection struct {
	MonthlyRequests int
	WithRouting     float64
	WithoutRouting  float64
	Savings         float64
}

// Project scales s linearly to each volume. An empty summary projects to zeros.
func (s Summary) Project(volumes []int) []Projection {
	out := make([]Projection, 0, len(volumes))
	for _, v := range volumes {
		p := Projection{MonthlyRequests: v}
		if s.Requests > 0 {
			scale := float64(v) / float64(s.Requests)
			p.WithRouting = s.WithRouting * scale
			p.WithoutRouting = s.WithoutRouting * scale
			p.Savings = s.Savings * scale
		}
		out = append(out, p)
	}
	return out
}
