package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteKV(t *testing.T) *Gorm {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Record{}))
	return NewGorm(db)
}

func kvImplementations(t *testing.T) map[string]KV {
	return map[string]KV{
		"memory": NewMemory(),
		"gorm":   newSQLiteKV(t),
	}
}

func TestKVGetPut(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, BucketPosts, "0")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Put(ctx, BucketPosts, "0", []byte(`{"id":0}`)))

			got, ok, err := kv.Get(ctx, BucketPosts, "0")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []byte(`{"id":0}`), got)
		})
	}
}

func TestKVPutReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Put(ctx, BucketPosts, "7", []byte("first")))
			require.NoError(t, kv.Put(ctx, BucketPosts, "7", []byte("second")))

			got, ok, err := kv.Get(ctx, BucketPosts, "7")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []byte("second"), got)
		})
	}
}

func TestKVBucketsAreIsolated(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Put(ctx, BucketPosts, "k", []byte("post")))
			require.NoError(t, kv.Put(ctx, BucketTags, "k", []byte("tag")))

			got, ok, err := kv.Get(ctx, BucketTags, "k")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []byte("tag"), got)
		})
	}
}

func TestKVForEach(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Put(ctx, BucketPosts, "0", []byte("a")))
			require.NoError(t, kv.Put(ctx, BucketPosts, "1", []byte("b")))
			require.NoError(t, kv.Put(ctx, BucketTags, "x", []byte("c")))

			seen := map[string]string{}
			err := kv.ForEach(ctx, BucketPosts, func(key string, value []byte) error {
				seen[key] = string(value)
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"0": "a", "1": "b"}, seen)
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	original := []byte("value")
	require.NoError(t, kv.Put(ctx, BucketPosts, "0", original))
	original[0] = 'X'

	got, ok, err := kv.Get(ctx, BucketPosts, "0")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)

	got[0] = 'Y'
	again, _, err := kv.Get(ctx, BucketPosts, "0")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}
