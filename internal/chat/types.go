package chat

import (
	"time"

	"support-router/internal/model"
	"support-router/internal/retrieval"
	"support-router/internal/routing"
)

// State is a step of the per-query state machine.
type State string

const (
	StateStart           State = "START"
	StateClassify        State = "CLASSIFY"
	StateRoute           State = "ROUTE"
	StateRespondTemplate State = "RESPOND_TEMPLATE"
	StateRetrieve        State = "RETRIEVE"
	StateGenerate        State = "GENERATE"
	StateEscalate        State = "ESCALATE"
	StateDone            State = "DONE"
)

// ChatInput is one incoming message.
type ChatInput struct {
	Message   string
	SessionID string
}

// Turn is the request-scoped record of one query, complete once it reaches DONE.
type Turn struct {
	Query      string
	SessionID  string
	Intent     model.Intent
	Confidence float64
	// Bucket is BucketUnknown only when classification was unavailable.
	Bucket   model.Bucket
	Action   routing.Action
	Reason   string
	CostTier model.CostTier

	Documents []retrieval.Document
	Response  string

	Degraded        bool
	RetrievalFailed bool
	Cached          bool

	Trace   []State
	Elapsed time.Duration
}

// Enter records a transition to s.
func (t *Turn) Enter(s State) { t.Trace = append(t.Trace, s) }

// State returns the last state reached.
func (t Turn) State() State {
	if len(t.Trace) == 0 {
		return ""
	}
	return t.Trace[len(t.Trace)-1]
}

// BucketInfo describes one bucket of the routing table.
type BucketInfo struct {
	Bucket      model.Bucket
	CostTier    model.CostTier
	Description string
	Intents     []model.Intent
}

// IntentsOutput describes the routing table.
type IntentsOutput struct {
	TotalIntents int
	Threshold    float64
	Buckets      []BucketInfo
}

// StatsOutput aggregates turns since startup.
type StatsOutput struct {
	StartedAt      time.Time
	TotalRequests  int
	ByBucket       map[model.Bucket]int
	ByAction       map[routing.Action]int
	Degraded       int
	Unclassified   int
	RetrievalFails int
	CacheHits      int

	AverageConfidence float64
	LowConfidence     int // below the routing threshold
	HighConfidence    int // at or above HighConfidence

	EstimatedCost  float64
	BaselineCost   float64 // every request escalated
	Savings        float64
	SavingsPercent float64
}

// HighConfidence is the confidence from which a prediction counts as high in stats.
const HighConfidence = 0.8
