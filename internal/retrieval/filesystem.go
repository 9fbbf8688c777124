package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"support-router/pkg/log"
)

// FileStore keeps the knowledge base in memory and persists it as a JSON
// snapshot. Search is an exact cosine scan over every record.
type FileStore struct {
	mu        sync.RWMutex
	path      string
	dimension int
	minScore  float64
	records   map[string]Record
	embedder  Embedder
	l         log.Logger
}

var _ Store = (*FileStore)(nil)

// FileStoreConfig configures a FileStore.
type FileStoreConfig struct {
	Path      string
	Dimension int
	MinScore  float64
}

type fileSnapshot struct {
	Dimension int          `json:"dimension"`
	Records   []fileRecord `json:"records"`
}

type fileRecord struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Embedding []float32         `json:"embedding"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewFileStore opens the snapshot at cfg.Path. A missing file yields an empty store.
func NewFileStore(cfg FileStoreConfig, embedder Embedder, l log.Logger) (*FileStore, error) {
	if cfg.Path == "" {
		return nil, errors.New("filesystem: path is required")
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("filesystem: dimension must be positive, got %d", cfg.Dimension)
	}
	s := &FileStore{
		path:      filepath.Clean(cfg.Path),
		dimension: cfg.Dimension,
		minScore:  cfg.MinScore,
		records:   make(map[string]Record),
		embedder:  embedder,
		l:         l,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Retrieve(ctx context.Context, query string, k int) ([]Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if k <= 0 {
		return []Document{}, nil
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: embed query: %w", LogPrefixFilesystem, err)
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query has %d, index has %d", ErrDimensionMismatch, len(vector), s.dimension)
	}

	s.mu.RLock()
	candidates := make([]Document, 0, len(s.records))
	for _, rec := range s.records {
		score := cosineSimilarity(rec.Embedding, vector)
		if score < s.minScore {
			continue
		}
		candidates = append(candidates, Document{
			ID:       rec.ID,
			Text:     rec.Text,
			Score:    score,
			Metadata: cloneMetadata(rec.Metadata),
		})
	}
	s.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score == candidates[j].Score {
			return candidates[i].ID < candidates[j].ID
		}
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	s.l.Debugf(ctx, "%s: %d documents for query (k=%d)", LogPrefixFilesystem, len(candidates), k)
	return candidates, nil
}

func (s *FileStore) Upsert(_ context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		if len(rec.Embedding) != s.dimension {
			return fmt.Errorf("%w: record %q has %d, index has %d", ErrDimensionMismatch, rec.ID, len(rec.Embedding), s.dimension)
		}
		s.records[rec.ID] = Record{
			ID:        rec.ID,
			Text:      rec.Text,
			Embedding: append([]float32(nil), rec.Embedding...),
			Metadata:  cloneMetadata(rec.Metadata),
		}
	}
	return s.persistLocked()
}

func (s *FileStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]Record)
	return s.persistLocked()
}

func (s *FileStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Ping always succeeds; the snapshot is loaded into memory at startup.
func (s *FileStore) Ping(_ context.Context) error {
	return nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("filesystem: read %q: %w", s.path, err)
	}
	var snap fileSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("filesystem: decode %q: %w", s.path, err)
	}
	if snap.Dimension > 0 && snap.Dimension != s.dimension {
		return fmt.Errorf("%w: snapshot %q has %d, config has %d", ErrDimensionMismatch, s.path, snap.Dimension, s.dimension)
	}
	for _, rec := range snap.Records {
		if len(rec.Embedding) != s.dimension {
			return fmt.Errorf("%w: snapshot record %q has %d", ErrDimensionMismatch, rec.ID, len(rec.Embedding))
		}
		s.records[rec.ID] = Record(rec)
	}
	return nil
}

func (s *FileStore) persistLocked() error {
	snap := fileSnapshot{
		Dimension: s.dimension,
		Records:   make([]fileRecord, 0, len(s.records)),
	}
	for _, rec := range s.records {
		snap.Records = append(snap.Records, fileRecord(rec))
	}
	sort.Slice(snap.Records, func(i, j int) bool { return snap.Records[i].ID < snap.Records[j].ID })

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("filesystem: encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("filesystem: ensure directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("filesystem: write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("filesystem: commit snapshot: %w", err)
	}
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
