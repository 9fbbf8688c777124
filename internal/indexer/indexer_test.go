package indexer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-router/internal/dataset"
	"support-router/internal/retrieval"
	"support-router/pkg/log"
)

// hashEmbedder maps text to a small deterministic vector.
type hashEmbedder struct {
	failOn string
	calls  int
}

func (h *hashEmbedder) vector(text string) []float32 {
	v := make([]float32, 4)
	for i, r := range strings.ToLower(text) {
		v[i%4] += float32(r % 7)
	}
	return v
}

func (h *hashEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return h.vector(text), nil
}

func (h *hashEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	h.calls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if h.failOn != "" && strings.Contains(t, h.failOn) {
			return nil, errors.New("embedding quota exceeded")
		}
		out[i] = h.vector(t)
	}
	return out, nil
}

func rows() []dataset.Row {
	return []dataset.Row{
		{Index: 0, Instruction: "cancel my order", Response: "Go to orders.", Intent: "cancel_order", Category: "ORDER"},
		{Index: 1, Instruction: "track my parcel", Response: "Use tracking.", Intent: "track_order", Category: "ORDER", Tags: "shipping"},
		{Index: 2, Instruction: "reset password", Response: "Click forgot password.", Intent: "recover_password", Category: "ACCOUNT"},
	}
}

func newStore(t *testing.T, emb retrieval.Embedder) *retrieval.FileStore {
	t.Helper()
	s, err := retrieval.NewFileStore(retrieval.FileStoreConfig{
		Path:      filepath.Join(t.TempDir(), "kb.json"),
		Dimension: 4,
	}, emb, log.NewNop())
	require.NoError(t, err)
	return s
}

func TestDocument(t *testing.T) {
	rec := Document(rows()[1])
	assert.Equal(t, "doc_1", rec.ID)
	assert.Equal(t, "Question: track my parcel\nAnswer: Use tracking.", rec.Text)
	assert.Equal(t, "track_order", rec.Metadata[retrieval.MetaIntent])
	assert.Equal(t, "shipping", rec.Metadata[retrieval.MetaTags])
	_, hasType := rec.Metadata[retrieval.MetaResponseType]
	assert.False(t, hasType)
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	emb := &hashEmbedder{}
	store := newStore(t, emb)

	res, err := New(emb, store, Config{BatchSize: 2}, log.NewNop()).Run(ctx, rows())
	require.NoError(t, err)
	assert.Equal(t, Result{Documents: 3, Indexed: 3, Batches: 2}, res)
	assert.Equal(t, 2, emb.calls)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	docs, err := store.Retrieve(ctx, "Question: reset password\nAnswer: Click forgot password.", 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc_2", docs[0].ID)
}

func TestRun_FailedBatchIsSkipped(t *testing.T) {
	ctx := context.Background()
	emb := &hashEmbedder{failOn: "parcel"}
	store := newStore(t, emb)

	res, err := New(emb, store, Config{BatchSize: 2}, log.NewNop()).Run(ctx, rows())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Indexed)
	assert.Equal(t, 2, res.Failed)
}

func TestRun_Reset(t *testing.T) {
	ctx := context.Background()
	emb := &hashEmbedder{}
	store := newStore(t, emb)

	_, err := New(emb, store, Config{}, log.NewNop()).Run(ctx, rows())
	require.NoError(t, err)

	_, err = New(emb, store, Config{Reset: true}, log.NewNop()).Run(ctx, rows()[:1])
	require.NoError(t, err)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emb := &hashEmbedder{}
	_, err := New(emb, newStore(t, emb), Config{}, log.NewNop()).Run(ctx, rows())
	assert.ErrorIs(t, err, context.Canceled)
}
