package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"support-router/pkg/log"
	pkgQdrant "support-router/pkg/qdrant"
)

// QdrantClient is the subset of pkg/qdrant the store uses.
type QdrantClient interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, req pkgQdrant.CreateCollectionRequest) error
	DeleteCollection(ctx context.Context, name string) error
	UpsertPoints(ctx context.Context, collectionName string, req pkgQdrant.UpsertPointsRequest) error
	SearchPoints(ctx context.Context, collectionName string, req pkgQdrant.SearchRequest) (*pkgQdrant.SearchResponse, error)
}

// QdrantStore keeps the knowledge base in a Qdrant collection.
type QdrantStore struct {
	client     QdrantClient
	embedder   Embedder
	collection string
	dimension  int
	minScore   float64
	l          log.Logger
}

var _ Store = (*QdrantStore)(nil)

// QdrantStoreConfig configures a QdrantStore.
type QdrantStoreConfig struct {
	Collection string
	Dimension  int
	MinScore   float64
}

func NewQdrantStore(client QdrantClient, embedder Embedder, cfg QdrantStoreConfig, l log.Logger) *QdrantStore {
	return &QdrantStore{
		client:     client,
		embedder:   embedder,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		minScore:   cfg.MinScore,
		l:          l,
	}
}

func (s *QdrantStore) Retrieve(ctx context.Context, query string, k int) ([]Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if k <= 0 {
		return []Document{}, nil
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: embed query: %w", LogPrefixQdrant, err)
	}

	req := pkgQdrant.SearchRequest{
		Vector:      vector,
		Limit:       k,
		WithPayload: true,
	}
	if s.minScore > 0 {
		threshold := s.minScore
		req.ScoreThreshold = &threshold
	}

	resp, err := s.client.SearchPoints(ctx, s.collection, req)
	if err != nil {
		return nil, fmt.Errorf("%s: search: %w", LogPrefixQdrant, err)
	}

	docs := make([]Document, 0, len(resp.Result))
	for _, scored := range resp.Result {
		text, ok := scored.Payload[PayloadText].(string)
		if !ok {
			s.l.Warnf(ctx, "%s: point %s has no text payload, skipped", LogPrefixQdrant, scored.ID)
			continue
		}
		id, _ := scored.Payload[PayloadDocID].(string)
		if id == "" {
			id = scored.ID
		}
		docs = append(docs, Document{
			ID:       id,
			Text:     text,
			Score:    scored.Score,
			Metadata: payloadMetadata(scored.Payload),
		})
	}
	return docs, nil
}

func (s *QdrantStore) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := s.ensureCollection(ctx); err != nil {
		return err
	}

	points := make([]pkgQdrant.Point, 0, len(records))
	for _, rec := range records {
		if s.dimension > 0 && len(rec.Embedding) != s.dimension {
			return fmt.Errorf("%w: record %q has %d, collection has %d", ErrDimensionMismatch, rec.ID, len(rec.Embedding), s.dimension)
		}
		payload := make(map[string]interface{}, len(rec.Metadata)+2)
		for k, v := range rec.Metadata {
			payload[k] = v
		}
		payload[PayloadDocID] = rec.ID
		payload[PayloadText] = rec.Text
		points = append(points, pkgQdrant.Point{
			ID:      PointID(rec.ID),
			Vector:  rec.Embedding,
			Payload: payload,
		})
	}

	if err := s.client.UpsertPoints(ctx, s.collection, pkgQdrant.UpsertPointsRequest{Points: points}); err != nil {
		return fmt.Errorf("%s: upsert: %w", LogPrefixQdrant, err)
	}
	return nil
}

func (s *QdrantStore) Reset(ctx context.Context) error {
	if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
		return fmt.Errorf("%s: drop collection: %w", LogPrefixQdrant, err)
	}
	return s.ensureCollection(ctx)
}

// Count is not tracked remotely; it reports -1 with no error.
func (s *QdrantStore) Count(_ context.Context) (int, error) {
	return -1, nil
}

// Ping checks that Qdrant answers and the collection exists.
func (s *QdrantStore) Ping(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("%s: check collection: %w", LogPrefixQdrant, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrCollectionMissing, s.collection)
	}
	return nil
}

func (s *QdrantStore) ensureCollection(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("%s: check collection: %w", LogPrefixQdrant, err)
	}
	if exists {
		return nil
	}
	s.l.Infof(ctx, "%s: creating collection %s (size=%d)", LogPrefixQdrant, s.collection, s.dimension)
	return s.client.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name:    s.collection,
		Vectors: pkgQdrant.VectorConfig{Size: s.dimension, Distance: "Cosine"},
	})
}

// PointID maps a document id to the deterministic UUID Qdrant requires.
func PointID(docID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("support-router/"+docID)).String()
}

func payloadMetadata(payload map[string]interface{}) map[string]string {
	out := make(map[string]string, len(payload))
	for k, v := range payload {
		if k == PayloadText || k == PayloadDocID {
			continue
		}
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
