// Package store provides the keyed map the board consumes from its
// environment: an identifier to serialized-record mapping with get/insert
// and linear iteration. Nested entities have no addressing of their own;
// every value is an opaque whole-aggregate record.
package store

import "context"

// Bucket names used by the board.
const (
	BucketPosts = "posts"
	BucketTags  = "tags"
	BucketMeta  = "meta"
)

// KV is a keyed store over named buckets. Implementations must make Put
// visible to a subsequent Get/ForEach in the same logical call sequence;
// no further transactional guarantees are required, the board serializes
// its own writes.
type KV interface {
	// Get returns the record for key, with false when the key is absent.
	Get(ctx context.Context, bucket, key string) ([]byte, bool, error)
	// Put inserts or replaces the record for key as a single unit.
	Put(ctx context.Context, bucket, key string, value []byte) error
	// ForEach visits every record in the bucket. Iteration order is
	// unspecified; callers needing order sort by key themselves.
	ForEach(ctx context.Context, bucket string, fn func(key string, value []byte) error) error
}
