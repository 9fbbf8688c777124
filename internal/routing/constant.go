package routing

const (
	LogPrefixLoadTable = "internal.routing.LoadTable"
)

const (
	// DefaultThreshold is the confidence below which a prediction is not trusted.
	DefaultThreshold = 0.5

	// DefaultTopK is the number of documents requested on the LOW_COST path.
	DefaultTopK = 3
)

// Action labels the concrete handling chosen for a query.
type Action string

const (
	ActionTemplate              Action = "template_response"
	ActionRAG                   Action = "rag_generation"
	ActionEscalation            Action = "escalation"
	ActionLowConfidenceFallback Action = "low_confidence_fallback"
	ActionUnknownIntentFallback Action = "unknown_intent_fallback"
)

const (
	reasonTableDefault  = "intent %s is routed to %s by the routing table"
	reasonLowConfidence = "confidence %.2f is below threshold %.2f, falling back to %s"
	reasonUnknownIntent = "intent %q is not in the routing table, falling back to %s"
	reasonPinned        = "intent %s is pinned to %s regardless of confidence %.2f"
)
