// Package tokens counts and trims prompt text against a token budget.
package tokens

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const DefaultEncoding = "cl100k_base"

// Counter measures text in model tokens.
type Counter interface {
	Count(text string) int
	// Truncate returns the longest prefix of text that fits in max tokens.
	Truncate(text string, max int) string
	Encoding() string
}

// TiktokenCounter counts with a BPE encoding.
type TiktokenCounter struct {
	encoding string
	mu       sync.RWMutex
	tke      *tiktoken.Tiktoken
}

// NewTiktokenCounter resolves modelOrEncoding as an encoding name first,
// then as a model name.
func NewTiktokenCounter(modelOrEncoding string) (*TiktokenCounter, error) {
	if modelOrEncoding == "" {
		modelOrEncoding = DefaultEncoding
	}

	tke, err := tiktoken.GetEncoding(modelOrEncoding)
	if err != nil {
		var modelErr error
		tke, modelErr = tiktoken.EncodingForModel(modelOrEncoding)
		if modelErr != nil {
			return nil, fmt.Errorf("tokens: unknown encoding or model %q: %w", modelOrEncoding, err)
		}
	}
	return &TiktokenCounter{encoding: modelOrEncoding, tke: tke}, nil
}

func (c *TiktokenCounter) Count(text string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tke.Encode(text, nil, nil))
}

func (c *TiktokenCounter) Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := c.tke.Encode(text, nil, nil)
	if len(ids) <= max {
		return text
	}
	return c.tke.Decode(ids[:max])
}

func (c *TiktokenCounter) Encoding() string { return c.encoding }

// EstimateCounter approximates one token per four runes.
type EstimateCounter struct{}

const runesPerToken = 4

func (EstimateCounter) Count(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + runesPerToken - 1) / runesPerToken
}

func (EstimateCounter) Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	limit := max * runesPerToken
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit])
}

func (EstimateCounter) Encoding() string { return "estimate" }

// New returns a tiktoken counter, or the estimate when the encoding cannot be
// loaded (the BPE ranks are fetched on first use). The error reports why the
// fallback was taken and is informational.
func New(modelOrEncoding string) (Counter, error) {
	if modelOrEncoding == "estimate" {
		return EstimateCounter{}, nil
	}
	tc, err := NewTiktokenCounter(modelOrEncoding)
	if err != nil {
		return EstimateCounter{}, err
	}
	return tc, nil
}
