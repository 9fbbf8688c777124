package retrieval

import (
	"context"
)

// Retriever returns the k documents most relevant to query, best first.
// Implementations are safe for concurrent readers.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Document, error)
}

// Indexer writes pre-embedded records into a knowledge base.
type Indexer interface {
	Upsert(ctx context.Context, records []Record) error
	Reset(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// Store is a knowledge base that can be both searched and filled.
type Store interface {
	Retriever
	Indexer
	// Ping reports whether the knowledge base can serve searches.
	Ping(ctx context.Context) error
}

// Embedder turns text into vectors. voyage.IVoyage satisfies it.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}
