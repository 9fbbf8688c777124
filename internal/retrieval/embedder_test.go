package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()
	inner := &fakeEmbedder{}
	e, err := NewCachedEmbedder(inner, 2)
	require.NoError(t, err)

	_, err = e.EmbedQuery(ctx, "Cancel my order")
	require.NoError(t, err)
	_, err = e.EmbedQuery(ctx, "  cancel   MY order ")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.queries, "normalized repeat should hit the cache")

	e.EmbedQuery(ctx, "refund")
	e.EmbedQuery(ctx, "other")
	assert.Equal(t, 2, e.Len())

	e.EmbedQuery(ctx, "cancel my order")
	assert.Equal(t, 4, inner.queries, "evicted entry is recomputed")
}

func TestCachedEmbedder_ErrorsNotCached(t *testing.T) {
	ctx := context.Background()
	inner := &fakeEmbedder{err: errEmbedDown}
	e, err := NewCachedEmbedder(inner, 0)
	require.NoError(t, err)

	_, err = e.EmbedQuery(ctx, "cancel")
	assert.ErrorIs(t, err, errEmbedDown)
	assert.Equal(t, 0, e.Len())

	docs, err := e.EmbedDocuments(ctx, []string{"a"})
	assert.ErrorIs(t, err, errEmbedDown)
	assert.Nil(t, docs)
}

func TestNoEmbedder(t *testing.T) {
	_, err := NoEmbedder{}.EmbedQuery(context.Background(), "q")
	assert.ErrorIs(t, err, ErrNoEmbedder)
	_, err = NoEmbedder{}.EmbedDocuments(context.Background(), []string{"d"})
	assert.ErrorIs(t, err, ErrNoEmbedder)
}
