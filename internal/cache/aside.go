package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bulletin/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	// PostsListKey caches the full visible posts listing.
	PostsListKey = "posts:all"

	// DefaultTTL is the expiry applied to cached listings.
	DefaultTTL = 30 * time.Second
)

// GetJSON fetches a key and unmarshals it into dest. Returns false on a
// cache miss or any Redis error so callers fall through to the store.
func GetJSON(ctx context.Context, key string, dest any) bool {
	c := GetClient()
	if c == nil {
		return false
	}
	raw, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			observability.CacheHits.WithLabelValues("error").Inc()
		} else {
			observability.CacheHits.WithLabelValues("miss").Inc()
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		observability.CacheHits.WithLabelValues("error").Inc()
		return false
	}
	observability.CacheHits.WithLabelValues("hit").Inc()
	return true
}

// SetJSON marshals value and stores it under key with the given TTL.
// Cache write failures are swallowed; the store remains authoritative.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	c := GetClient()
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.Set(ctx, key, raw, ttl)
}

// InvalidatePostsList drops the cached posts listing after any write.
func InvalidatePostsList(ctx context.Context) {
	c := GetClient()
	if c == nil {
		return
	}
	c.Del(ctx, PostsListKey)
}
