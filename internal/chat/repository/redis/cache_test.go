package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-router/internal/chat/repository"
	pkgRedis "support-router/pkg/redis"
)

func TestCache_RoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := pkgRedis.New(pkgRedis.Config{Address: mr.Addr()})
	defer client.Close()
	cache := New(client)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, "cancel my order")
	require.NoError(t, err)
	assert.False(t, found)

	err = cache.Set(ctx, "Cancel  my order", repository.CachedAnswer{
		Response:  "Go to Orders and press Cancel.",
		SourceIDs: []string{"doc_1", "doc_9"},
		Intent:    "cancel_order",
	}, time.Hour)
	require.NoError(t, err)

	got, found, err := cache.Get(ctx, "  cancel my ORDER ")
	require.NoError(t, err)
	require.True(t, found, "normalized query should hit")
	assert.Equal(t, "Go to Orders and press Cancel.", got.Response)
	assert.Equal(t, []string{"doc_1", "doc_9"}, got.SourceIDs)
	assert.NotZero(t, got.CreatedAt)

	assert.Equal(t, time.Hour, mr.TTL(Key("cancel my order")))

	mr.FastForward(2 * time.Hour)
	_, found, err = cache.Get(ctx, "cancel my order")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_CorruptEntry(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	require.NoError(t, mr.Set(Key("hello"), "{not json"))
	cache := New(pkgRedis.New(pkgRedis.Config{Address: mr.Addr()}))

	_, found, err := cache.Get(context.Background(), "hello")
	assert.Error(t, err)
	assert.False(t, found)
}

func TestCache_BackendError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet(Key("hello")).SetErr(errors.New("connection refused"))

	cache := New(pkgRedis.NewFromClient(db))
	_, found, err := cache.Get(context.Background(), "hello")

	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("Track my order"), Key("track   my order"))
	assert.NotEqual(t, Key("track my order"), Key("cancel my order"))
	assert.Contains(t, Key("x"), keyPrefix)
}
