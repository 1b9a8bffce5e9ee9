package board

import (
	"context"
	"errors"
	"testing"

	"bulletin/internal/models"
	"bulletin/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = models.AccountID("alice.test")
	bob   = models.AccountID("bob.test")
)

func newTestBoard(t *testing.T) (*Board, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	return New(kv), kv
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestAddPostAssignsSequentialIDs(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	first, err := b.AddPost(ctx, alice, "T", "C", []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), first.ID)
	assert.Equal(t, models.StatusOpen, first.Status)
	assert.Equal(t, []string{"x", "y"}, first.Tags)
	assert.Equal(t, alice, first.Creator)

	second, err := b.AddPost(ctx, bob, "T2", "C2", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), second.ID)
}

func TestGetAllPostsReturnsSingleEntry(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	_, err := b.AddPost(ctx, alice, "T", "C", []string{"x", "y"})
	require.NoError(t, err)

	posts, err := b.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, uint64(0), posts[0].ID)
	assert.Equal(t, models.StatusOpen, posts[0].Status)
	assert.Equal(t, []string{"x", "y"}, posts[0].Tags)
}

func TestIDCounterNeverReused(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	post, err := b.AddPost(ctx, alice, "gone soon", "c", nil)
	require.NoError(t, err)
	_, err = b.EditPost(ctx, alice, post.ID, nil, nil, nil, "Removed")
	require.NoError(t, err)

	next, err := b.AddPost(ctx, alice, "T", "C", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), next.ID)
}

// flakyKV passes everything through to a Memory store except Put calls
// against failBucket, which fail while the field is set.
type flakyKV struct {
	*store.Memory
	failBucket string
}

func (f *flakyKV) Put(ctx context.Context, bucket, key string, value []byte) error {
	if bucket == f.failBucket {
		return errors.New("store unavailable")
	}
	return f.Memory.Put(ctx, bucket, key, value)
}

func TestFailedAddPostNeverOverwritesEarlierPost(t *testing.T) {
	kv := &flakyKV{Memory: store.NewMemory()}
	b := New(kv)
	ctx := context.Background()

	first, err := b.AddPost(ctx, alice, "first", "keep me", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), first.ID)

	// Counter commits, then the post write fails: id 1 is burned.
	kv.failBucket = store.BucketPosts
	_, err = b.AddPost(ctx, bob, "lost", "never stored", nil)
	require.Error(t, err)

	kv.failBucket = ""
	third, err := b.AddPost(ctx, bob, "third", "c", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), third.ID, "burned id must not be handed out again")

	posts, err := b.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "first", posts[0].Title)
	assert.Equal(t, "keep me", posts[0].Content)
	assert.Equal(t, alice, posts[0].Creator)
}

func TestFailedCounterCommitWritesNothing(t *testing.T) {
	kv := &flakyKV{Memory: store.NewMemory()}
	b := New(kv)
	ctx := context.Background()

	kv.failBucket = store.BucketMeta
	_, err := b.AddPost(ctx, alice, "T", "C", []string{"x"})
	require.Error(t, err)

	_, ok, err := kv.Get(ctx, store.BucketPosts, "0")
	require.NoError(t, err)
	assert.False(t, ok, "aborted add must not leave a post record")

	kv.failBucket = ""
	post, err := b.AddPost(ctx, alice, "T", "C", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), post.ID)
}

func TestSearchPosts(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	_, err := b.AddPost(ctx, alice, "Go generics", "a deep dive", nil)
	require.NoError(t, err)
	_, err = b.AddPost(ctx, alice, "Weekly digest", "news about Go", nil)
	require.NoError(t, err)
	_, err = b.AddPost(ctx, bob, "Cooking", "pasta", nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		ids   []uint64
	}{
		{"matches title", "generics", []uint64{0}},
		{"matches content", "news", []uint64{1}},
		{"matches both posts", "Go", []uint64{0, 1}},
		{"case sensitive", "go", nil},
		{"no match", "rust", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := b.SearchPosts(ctx, tt.query)
			require.NoError(t, err)
			var got []uint64
			for _, p := range posts {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.ids, got)
		})
	}
}

func TestSearchPostsByTags(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	_, err := b.AddPost(ctx, alice, "A", "a", []string{"go", "backend"})
	require.NoError(t, err)
	_, err = b.AddPost(ctx, alice, "B", "b", []string{"go"})
	require.NoError(t, err)

	both, err := b.SearchPostsByTags(ctx, []string{"go", "backend"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, uint64(0), both[0].ID)

	all, err := b.SearchPostsByTags(ctx, []string{"go"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSearchPostsByCreator(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	_, err := b.AddPost(ctx, alice, "A", "a", nil)
	require.NoError(t, err)
	_, err = b.AddPost(ctx, bob, "B", "b", nil)
	require.NoError(t, err)

	posts, err := b.SearchPostsByCreator(ctx, bob)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, uint64(1), posts[0].ID)
}

func TestRemovedPostExcludedEverywhere(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	post, err := b.AddPost(ctx, alice, "Target", "content", []string{"x"})
	require.NoError(t, err)
	_, err = b.EditPost(ctx, alice, post.ID, nil, nil, nil, "Removed")
	require.NoError(t, err)

	all, err := b.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	byText, err := b.SearchPosts(ctx, "Target")
	require.NoError(t, err)
	assert.Empty(t, byText)

	byTags, err := b.SearchPostsByTags(ctx, []string{"x"})
	require.NoError(t, err)
	assert.Empty(t, byTags)

	byCreator, err := b.SearchPostsByCreator(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, byCreator)
}

func TestSearchIsIdempotent(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	_, err := b.AddPost(ctx, alice, "A", "a", []string{"go"})
	require.NoError(t, err)

	first, err := b.SearchPosts(ctx, "A")
	require.NoError(t, err)
	second, err := b.SearchPosts(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLikePostStacksDuplicates(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	post, err := b.AddPost(ctx, alice, "T", "C", nil)
	require.NoError(t, err)

	_, err = b.LikePost(ctx, bob, post.ID)
	require.NoError(t, err)
	liked, err := b.LikePost(ctx, bob, post.ID)
	require.NoError(t, err)
	// Likes are not deduplicated: the same account can stack entries.
	assert.Equal(t, []models.AccountID{bob, bob}, liked.LikedBy)

	after, err := b.UnlikePost(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.AccountID{bob}, after.LikedBy)
}

func TestLikePostOutcomes(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	post, err := b.AddPost(ctx, alice, "T", "C", nil)
	require.NoError(t, err)
	locked, err := b.AddPost(ctx, alice, "L", "C", nil)
	require.NoError(t, err)
	_, err = b.EditPost(ctx, alice, locked.ID, nil, nil, nil, "Locked")
	require.NoError(t, err)

	_, err = b.LikePost(ctx, bob, 99)
	assert.True(t, models.IsNotFound(err))

	_, err = b.LikePost(ctx, bob, locked.ID)
	assert.True(t, models.IsNoPermission(err))

	_, err = b.UnlikePost(ctx, bob, post.ID)
	assert.True(t, models.IsNotFound(err), "unliking without a prior like is NotFound")
}

func TestUnlikeRemovesFirstOccurrenceOnly(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	post, err := b.AddPost(ctx, alice, "T", "C", nil)
	require.NoError(t, err)
	_, err = b.LikePost(ctx, alice, post.ID)
	require.NoError(t, err)
	_, err = b.LikePost(ctx, bob, post.ID)
	require.NoError(t, err)
	_, err = b.LikePost(ctx, alice, post.ID)
	require.NoError(t, err)

	after, err := b.UnlikePost(ctx, alice, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.AccountID{bob, alice}, after.LikedBy)
}

func TestPostsByTagSkipsStaleIndexEntries(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	kept, err := b.AddPost(ctx, alice, "kept", "c", []string{"go"})
	require.NoError(t, err)
	removed, err := b.AddPost(ctx, alice, "removed", "c", []string{"go"})
	require.NoError(t, err)
	retagged, err := b.AddPost(ctx, alice, "retagged", "c", []string{"go"})
	require.NoError(t, err)

	_, err = b.EditPost(ctx, alice, removed.ID, nil, nil, nil, "Removed")
	require.NoError(t, err)
	// Retagging does not prune the index; the live post is the authority.
	_, err = b.EditPost(ctx, alice, retagged.ID, nil, nil, []string{"rust"}, "Open")
	require.NoError(t, err)

	posts, err := b.PostsByTag(ctx, "go")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, kept.ID, posts[0].ID)
}

func TestRejectedCallLeavesStoredStateIdentical(t *testing.T) {
	b, kv := newTestBoard(t)
	ctx := context.Background()

	post, err := b.AddPost(ctx, alice, "T", "C", []string{"x"})
	require.NoError(t, err)

	before, ok, err := kv.Get(ctx, store.BucketPosts, "0")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = b.EditPost(ctx, bob, post.ID, strPtr("hijacked"), nil, nil, "Open")
	assert.True(t, models.IsNoPermission(err))
	_, err = b.EditPost(ctx, bob, post.ID, nil, nil, nil, "Removed")
	assert.True(t, models.IsNoPermission(err))
	_, err = b.EditComment(ctx, bob, post.ID, 0, nil, strPtr("x"), "")
	assert.True(t, models.IsNotFound(err))

	after, ok, err := kv.Get(ctx, store.BucketPosts, "0")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, before, after, "rejected calls must not write")
}
