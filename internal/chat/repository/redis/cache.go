package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"support-router/internal/chat/repository"
	pkgRedis "support-router/pkg/redis"
)

const keyPrefix = "support-router:answer:"

// Client is the subset of pkg/redis the cache uses.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type implCache struct {
	client Client
}

// New creates a redis-backed answer cache.
func New(client Client) repository.AnswerCache {
	return &implCache{client: client}
}

func (c *implCache) Get(ctx context.Context, query string) (repository.CachedAnswer, bool, error) {
	raw, err := c.client.Get(ctx, Key(query))
	if errors.Is(err, pkgRedis.Nil) {
		return repository.CachedAnswer{}, false, nil
	}
	if err != nil {
		return repository.CachedAnswer{}, false, fmt.Errorf("answer cache get: %w", err)
	}

	var ans repository.CachedAnswer
	if err := json.Unmarshal([]byte(raw), &ans); err != nil {
		return repository.CachedAnswer{}, false, fmt.Errorf("answer cache decode: %w", err)
	}
	return ans, true, nil
}

func (c *implCache) Set(ctx context.Context, query string, ans repository.CachedAnswer, ttl time.Duration) error {
	if ans.CreatedAt == 0 {
		ans.CreatedAt = time.Now().Unix()
	}
	data, err := json.Marshal(ans)
	if err != nil {
		return fmt.Errorf("answer cache encode: %w", err)
	}
	if err := c.client.Set(ctx, Key(query), data, ttl); err != nil {
		return fmt.Errorf("answer cache set: %w", err)
	}
	return nil
}

// Key hashes the case- and whitespace-normalized query.
func Key(query string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(query), " "))
	sum := sha256.Sum256([]byte(norm))
	return keyPrefix + hex.EncodeToString(sum[:])
}
