package http

import (
	"strings"

	"support-router/internal/chat"
	"support-router/pkg/response"
)

// --- Request DTOs ---

type chatReq struct {
	Message   string `json:"message"    binding:"required"`
	SessionID string `json:"session_id" binding:"max=128"`
}

func (r chatReq) validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return chat.ErrEmptyMessage
	}
	return nil
}

func (r chatReq) toInput() chat.ChatInput {
	return chat.ChatInput{
		Message:   r.Message,
		SessionID: r.SessionID,
	}
}

// --- Response DTOs ---

type sourceResp struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type chatResp struct {
	SessionID  string       `json:"session_id,omitempty"`
	Intent     string       `json:"intent"`
	Confidence float64      `json:"confidence"`
	Bucket     string       `json:"bucket"`
	CostTier   string       `json:"cost_tier"`
	Action     string       `json:"action"`
	Reason     string       `json:"reason"`
	Degraded   bool         `json:"degraded"`
	Cached     bool         `json:"cached"`
	Response   string       `json:"response"`
	Sources    []sourceResp `json:"sources"`
	States     []string     `json:"states"`
	LatencyMS  int64        `json:"latency_ms"`
}

func (h *handler) newChatResp(t chat.Turn) chatResp {
	resp := chatResp{
		SessionID:  t.SessionID,
		Intent:     string(t.Intent),
		Confidence: t.Confidence,
		CostTier:   string(t.CostTier),
		Action:     string(t.Action),
		Reason:     t.Reason,
		Degraded:   t.Degraded,
		Cached:     t.Cached,
		Response:   t.Response,
		Sources:    make([]sourceResp, 0, len(t.Documents)),
		States:     make([]string, 0, len(t.Trace)),
		LatencyMS:  t.Elapsed.Milliseconds(),
	}
	if t.Bucket.CostTier() != "" {
		resp.Bucket = t.Bucket.String()
	}
	for _, d := range t.Documents {
		resp.Sources = append(resp.Sources, sourceResp{ID: d.ID, Score: d.Score, Metadata: d.Metadata})
	}
	for _, s := range t.Trace {
		resp.States = append(resp.States, string(s))
	}
	return resp
}

type bucketResp struct {
	Bucket      string   `json:"bucket"`
	CostTier    string   `json:"cost_tier"`
	Description string   `json:"description"`
	Intents     []string `json:"intents"`
}

type intentsResp struct {
	TotalIntents int          `json:"total_intents"`
	Threshold    float64      `json:"confidence_threshold"`
	Buckets      []bucketResp `json:"buckets"`
}

func (h *handler) newIntentsResp(o chat.IntentsOutput) intentsResp {
	resp := intentsResp{
		TotalIntents: o.TotalIntents,
		Threshold:    o.Threshold,
		Buckets:      make([]bucketResp, 0, len(o.Buckets)),
	}
	for _, b := range o.Buckets {
		intents := make([]string, 0, len(b.Intents))
		for _, i := range b.Intents {
			intents = append(intents, string(i))
		}
		resp.Buckets = append(resp.Buckets, bucketResp{
			Bucket:      b.Bucket.String(),
			CostTier:    string(b.CostTier),
			Description: b.Description,
			Intents:     intents,
		})
	}
	return resp
}

type statsResp struct {
	StartedAt         response.DateTime `json:"started_at"`
	TotalRequests     int               `json:"total_requests"`
	ByBucket          map[string]int    `json:"by_bucket"`
	ByAction          map[string]int    `json:"by_action"`
	Degraded          int               `json:"degraded"`
	Unclassified      int               `json:"unclassified"`
	RetrievalFailures int               `json:"retrieval_failures"`
	CacheHits         int               `json:"cache_hits"`
	AverageConfidence float64           `json:"average_confidence"`
	LowConfidence     int               `json:"low_confidence"`
	HighConfidence    int               `json:"high_confidence"`
	EstimatedCost     float64           `json:"estimated_cost_usd"`
	BaselineCost      float64           `json:"baseline_cost_usd"`
	Savings           float64           `json:"savings_usd"`
	SavingsPercent    float64           `json:"savings_percent"`
}

func (h *handler) newStatsResp(o chat.StatsOutput) statsResp {
	resp := statsResp{
		StartedAt:         response.DateTime(o.StartedAt),
		TotalRequests:     o.TotalRequests,
		ByBucket:          make(map[string]int, len(o.ByBucket)),
		ByAction:          make(map[string]int, len(o.ByAction)),
		Degraded:          o.Degraded,
		Unclassified:      o.Unclassified,
		RetrievalFailures: o.RetrievalFails,
		CacheHits:         o.CacheHits,
		AverageConfidence: o.AverageConfidence,
		LowConfidence:     o.LowConfidence,
		HighConfidence:    o.HighConfidence,
		EstimatedCost:     o.EstimatedCost,
		BaselineCost:      o.BaselineCost,
		Savings:           o.Savings,
		SavingsPercent:    o.SavingsPercent,
	}
	for b, n := range o.ByBucket {
		resp.ByBucket[b.String()] = n
	}
	for a, n := range o.ByAction {
		resp.ByAction[string(a)] = n
	}
	return resp
}
