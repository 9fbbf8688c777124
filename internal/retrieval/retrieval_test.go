package retrieval

import (
	"context"
	"errors"
	"strings"
	"sync"

	"support-router/pkg/log"
)

// fakeEmbedder maps keywords to fixed 3-d directions.
type fakeEmbedder struct {
	mu      sync.Mutex
	queries int
	err     error
}

func (f *fakeEmbedder) vector(text string) []float32 {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "cancel"):
		return []float32{1, 0, 0}
	case strings.Contains(t, "refund"):
		return []float32{0, 1, 0}
	default:
		return []float32{0, 0, 1}
	}
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.queries++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vector(t)
	}
	return out, nil
}

var errEmbedDown = errors.New("embedder down")

func testRecords() []Record {
	return []Record{
		{ID: "doc_0", Text: "Question: how do I cancel my order\nAnswer: go to orders", Embedding: []float32{1, 0, 0}, Metadata: map[string]string{MetaIntent: "cancel_order"}},
		{ID: "doc_1", Text: "Question: cancel purchase\nAnswer: contact us", Embedding: []float32{0.9, 0.1, 0}, Metadata: map[string]string{MetaIntent: "cancel_order"}},
		{ID: "doc_2", Text: "Question: refund status\nAnswer: 5 days", Embedding: []float32{0, 1, 0}, Metadata: map[string]string{MetaIntent: "get_refund"}},
		{ID: "doc_3", Text: "Question: cancel order twin\nAnswer: same", Embedding: []float32{1, 0, 0}},
	}
}

var nopLogger = log.NewNop()
