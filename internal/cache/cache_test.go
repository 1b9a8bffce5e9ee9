package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetJSONMiss(t *testing.T) {
	setupTestRedis(t)

	var out []string
	assert.False(t, GetJSON(context.Background(), "absent", &out))
	assert.Empty(t, out)
}

func TestSetThenGetJSON(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	in := []string{"first", "second"}
	SetJSON(ctx, PostsListKey, in, DefaultTTL)

	var out []string
	require.True(t, GetJSON(ctx, PostsListKey, &out))
	assert.Equal(t, in, out)
}

func TestSetJSONAppliesTTL(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	SetJSON(ctx, PostsListKey, "cached", 10*time.Second)
	mr.FastForward(11 * time.Second)

	var out string
	assert.False(t, GetJSON(ctx, PostsListKey, &out))
}

func TestInvalidatePostsList(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	SetJSON(ctx, PostsListKey, "cached", DefaultTTL)
	InvalidatePostsList(ctx)

	var out string
	assert.False(t, GetJSON(ctx, PostsListKey, &out))
}

func TestNilClientIsSafe(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var out string
	assert.False(t, GetJSON(ctx, "key", &out))
	SetJSON(ctx, "key", "value", DefaultTTL)
	InvalidatePostsList(ctx)
}

func TestGetJSONCorruptPayload(t *testing.T) {
	mr := setupTestRedis(t)
	require.NoError(t, mr.Set(PostsListKey, "not json"))

	var out []string
	assert.False(t, GetJSON(context.Background(), PostsListKey, &out))
}
