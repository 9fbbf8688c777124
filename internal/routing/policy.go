package routing

import (
	"fmt"
	"math"

	"support-router/internal/model"
)

// Config holds the tunables of the routing policy.
type Config struct {
	Threshold float64
	TopK      int
	// PinEscalation keeps ESCALATE intents on ESCALATE even when confidence is low.
	PinEscalation bool
}

// Policy decides the bucket of a classified query. It holds no mutable state
// and is safe for concurrent use.
type Policy struct {
	table Table
	cfg   Config
}

// New validates cfg and returns a Policy over table.
func New(table Table, cfg Config) (*Policy, error) {
	if table.Len() == 0 {
		return nil, fmt.Errorf("%w: routing table is empty", ErrConfiguration)
	}
	if math.IsNaN(cfg.Threshold) || cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("%w: threshold %.3f must be within [0,1]", ErrConfiguration, cfg.Threshold)
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	return &Policy{table: table, cfg: cfg}, nil
}

// Table returns the routing table the policy reads from.
func (p *Policy) Table() Table {
	return p.table
}

// Threshold returns the configured confidence threshold.
func (p *Policy) Threshold() float64 {
	return p.cfg.Threshold
}

// Decide maps (intent, confidence) to a bucket.
//
// Unknown intents go to LOW_COST. A confidence strictly below the threshold
// overrides the table default to LOW_COST; equality keeps the default.
func (p *Policy) Decide(intent model.Intent, confidence float64) Decision {
	d := Decision{
		Intent:     intent,
		Confidence: confidence,
	}

	def, ok := p.table.Lookup(intent)
	if !ok {
		d.Bucket = model.BucketLowCost
		d.Action = ActionUnknownIntentFallback
		d.Reason = fmt.Sprintf(reasonUnknownIntent, intent, model.BucketLowCost)
		d.CostTier = d.Bucket.CostTier()
		return d
	}
	d.Default = def

	switch {
	case confidence < p.cfg.Threshold && def == model.BucketEscalate && p.cfg.PinEscalation:
		d.Bucket = def
		d.Action = ActionEscalation
		d.Reason = fmt.Sprintf(reasonPinned, intent, def, confidence)
	case confidence < p.cfg.Threshold:
		d.Bucket = model.BucketLowCost
		d.Action = ActionLowConfidenceFallback
		d.Reason = fmt.Sprintf(reasonLowConfidence, confidence, p.cfg.Threshold, model.BucketLowCost)
	default:
		d.Bucket = def
		d.Action = actionFor(def)
		d.Reason = fmt.Sprintf(reasonTableDefault, intent, def)
	}
	d.CostTier = d.Bucket.CostTier()
	return d
}

// Route turns a decision into the work order for its bucket.
func (p *Policy) Route(d Decision, query string) Route {
	switch d.Bucket {
	case model.BucketZeroCost:
		return ZeroCostRoute{Intent: d.Intent}
	case model.BucketEscalate:
		return EscalateRoute{Intent: d.Intent, Query: query}
	default:
		return LowCostRoute{Query: query, TopK: p.cfg.TopK}
	}
}

func actionFor(b model.Bucket) Action {
	switch b {
	case model.BucketZeroCost:
		return ActionTemplate
	case model.BucketEscalate:
		return ActionEscalation
	default:
		return ActionRAG
	}
}
