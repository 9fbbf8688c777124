package repository

import (
	"context"
	"time"
)

// CachedAnswer is a generated LOW_COST answer stored for reuse.
type CachedAnswer struct {
	Response  string   `json:"response"`
	SourceIDs []string `json:"source_ids"`
	Intent    string   `json:"intent"`
	CreatedAt int64    `json:"created_at"`
}

// AnswerCache stores LOW_COST answers by query.
type AnswerCache interface {
	// Get returns found=false on a miss.
	Get(ctx context.Context, query string) (answer CachedAnswer, found bool, err error)
	Set(ctx context.Context, query string, answer CachedAnswer, ttl time.Duration) error
}
