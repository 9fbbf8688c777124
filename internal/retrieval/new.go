package retrieval

import (
	"fmt"

	"support-router/config"
	"support-router/pkg/log"
	pkgQdrant "support-router/pkg/qdrant"
)

// New opens the store selected by cfg.Retrieval.Backend.
func New(cfg *config.Config, embedder Embedder, l log.Logger) (Store, error) {
	switch cfg.Retrieval.Backend {
	case BackendFilesystem:
		return NewFileStore(FileStoreConfig{
			Path:      cfg.Retrieval.IndexPath,
			Dimension: cfg.Retrieval.Dimension,
			MinScore:  cfg.Retrieval.MinScore,
		}, embedder, l)
	case BackendQdrant:
		if cfg.Qdrant.URL == "" {
			return nil, fmt.Errorf("retrieval: qdrant.url is required for the qdrant backend")
		}
		client := pkgQdrant.NewClient(cfg.Qdrant.URL, cfg.Qdrant.APIKey)
		return NewQdrantStore(client, embedder, QdrantStoreConfig{
			Collection: cfg.Qdrant.CollectionName,
			Dimension:  cfg.Qdrant.VectorSize,
			MinScore:   cfg.Retrieval.MinScore,
		}, l), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Retrieval.Backend)
	}
}
