package retrieval

import "errors"

var (
	ErrEmptyQuery        = errors.New("retrieval: query is empty")
	ErrDimensionMismatch = errors.New("retrieval: embedding dimension mismatch")
	ErrUnknownBackend    = errors.New("retrieval: unknown backend")
	ErrCollectionMissing = errors.New("retrieval: collection does not exist")
)

// ErrNoEmbedder is returned by every call of a knowledge base opened without an embedding provider.
var ErrNoEmbedder = errors.New("retrieval: no embedding provider configured")
