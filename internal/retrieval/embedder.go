package retrieval

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedEmbedder memoizes query embeddings. Document embeddings pass through.
type CachedEmbedder struct {
	next  Embedder
	cache *lru.Cache[string, []float32]
}

var _ Embedder = (*CachedEmbedder)(nil)

func NewCachedEmbedder(next Embedder, size int) (*CachedEmbedder, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, err
	}
	return &CachedEmbedder{next: next, cache: cache}, nil
}

func (e *CachedEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	key := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if v, ok := e.cache.Get(key); ok {
		return v, nil
	}
	v, err := e.next.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}
	e.cache.Add(key, v)
	return v, nil
}

func (e *CachedEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.next.EmbedDocuments(ctx, texts)
}

// Len reports the number of cached queries.
func (e *CachedEmbedder) Len() int { return e.cache.Len() }

// NoEmbedder stands in when no embedding provider is configured. Retrieval
// then fails per query and the LOW_COST path answers without context.
type NoEmbedder struct{}

func (NoEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return nil, ErrNoEmbedder
}

func (NoEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, ErrNoEmbedder
}
