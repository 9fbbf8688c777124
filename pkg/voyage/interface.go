package voyage

import (
	"context"
)

// IVoyage embeds text with Voyage AI.
// Implementations are safe for concurrent use.
type IVoyage interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}
