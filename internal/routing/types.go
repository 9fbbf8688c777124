package routing

import "support-router/internal/model"

// Decision is the outcome of the routing policy for one query.
type Decision struct {
	Intent     model.Intent
	Confidence float64
	Bucket     model.Bucket
	// Default is the table bucket before any fallback; BucketUnknown for unknown intents.
	Default  model.Bucket
	Action   Action
	Reason   string
	CostTier model.CostTier
}

// Fallback reports whether the table default was overridden.
func (d Decision) Fallback() bool {
	return d.Action == ActionLowConfidenceFallback || d.Action == ActionUnknownIntentFallback
}

// Route is the bucket-specific work order produced from a Decision.
// The concrete types are ZeroCostRoute, LowCostRoute and EscalateRoute.
type Route interface {
	Bucket() model.Bucket
	route()
}

// ZeroCostRoute answers from the static template of Intent.
type ZeroCostRoute struct {
	Intent model.Intent
}

// LowCostRoute answers with retrieval of TopK documents followed by generation.
type LowCostRoute struct {
	Query string
	TopK  int
}

// EscalateRoute hands the query to the escalation path.
type EscalateRoute struct {
	Intent model.Intent
	Query  string
}

func (ZeroCostRoute) Bucket() model.Bucket { return model.BucketZeroCost }
func (LowCostRoute) Bucket() model.Bucket  { return model.BucketLowCost }
func (EscalateRoute) Bucket() model.Bucket { return model.BucketEscalate }

func (ZeroCostRoute) route() {}
func (LowCostRoute) route()  {}
func (EscalateRoute) route() {}
