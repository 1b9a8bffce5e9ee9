// Package board implements the moderated, hierarchical content store: a
// post collection with nested comments and sub-comments, a per-level status
// lifecycle, a tag index and per-post like lists.
//
// The board consumes a keyed store addressing whole Post aggregates only.
// Every mutation follows the same shape: read the aggregate, transform the
// addressed path, write the aggregate back as one record. Rejected calls
// return a sentinel and never write. A mutex serializes mutating calls so
// the read-modify-write step is atomic inside a concurrent server.
package board

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"bulletin/internal/models"
	"bulletin/internal/observability"
	"bulletin/internal/store"
)

const metaNextID = "next_post_id"

// Board is the top-level aggregate owner: the post collection, the tag
// index and the monotonically increasing id counter.
type Board struct {
	mu  sync.Mutex
	kv  store.KV
	log *observability.BoardLogger
}

// New returns a Board over the given keyed store. The id counter starts at 0
// on an empty store and is never reused, even when a post is later removed.
func New(kv store.KV) *Board {
	return &Board{kv: kv, log: observability.NewBoardLogger()}
}

func postKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func (b *Board) getPost(ctx context.Context, id uint64) (*models.Post, bool, error) {
	raw, ok, err := b.kv.Get(ctx, store.BucketPosts, postKey(id))
	if err != nil || !ok {
		return nil, false, err
	}
	var post models.Post
	if err := json.Unmarshal(raw, &post); err != nil {
		return nil, false, fmt.Errorf("decode post %d: %w", id, err)
	}
	return &post, true, nil
}

func (b *Board) putPost(ctx context.Context, post *models.Post) error {
	raw, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("encode post %d: %w", post.ID, err)
	}
	return b.kv.Put(ctx, store.BucketPosts, postKey(post.ID), raw)
}

func (b *Board) nextID(ctx context.Context) (uint64, error) {
	raw, ok, err := b.kv.Get(ctx, store.BucketMeta, metaNextID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	var id uint64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, fmt.Errorf("decode id counter: %w", err)
	}
	return id, nil
}

func (b *Board) setNextID(ctx context.Context, id uint64) error {
	raw, _ := json.Marshal(id)
	return b.kv.Put(ctx, store.BucketMeta, metaNextID, raw)
}

func (b *Board) tagIDs(ctx context.Context, tag string) ([]uint64, error) {
	raw, ok, err := b.kv.Get(ctx, store.BucketTags, tag)
	if err != nil || !ok {
		return nil, err
	}
	var ids []uint64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode tag index %q: %w", tag, err)
	}
	return ids, nil
}

func (b *Board) putTagIDs(ctx context.Context, tag string, ids []uint64) error {
	raw, _ := json.Marshal(ids)
	return b.kv.Put(ctx, store.BucketTags, tag, raw)
}

// AddPost allocates the next id, stores an Open post and appends the id to
// every supplied tag's index entry (duplicate tags in the input each append).
// It has no failure mode beyond store I/O.
func (b *Board) AddPost(ctx context.Context, caller models.AccountID, title, content string, tags []string) (*models.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, err := b.nextID(ctx)
	if err != nil {
		return nil, b.fail(ctx, "add_post", err)
	}

	// Commit the incremented counter before the post record. If a later
	// write fails the id is merely skipped; committing the post first
	// would let a stale counter hand the same id to the next call and
	// silently overwrite this post.
	if err := b.setNextID(ctx, id+1); err != nil {
		return nil, b.fail(ctx, "add_post", err)
	}

	post := &models.Post{
		ID:       id,
		Title:    title,
		Content:  content,
		Tags:     append([]string(nil), tags...),
		LikedBy:  []models.AccountID{},
		Creator:  caller,
		Status:   models.StatusOpen,
		Comments: []models.Comment{},
	}

	if err := b.putPost(ctx, post); err != nil {
		return nil, b.fail(ctx, "add_post", err)
	}

	for _, tag := range tags {
		ids, err := b.tagIDs(ctx, tag)
		if err != nil {
			return nil, b.fail(ctx, "add_post", err)
		}
		if err := b.putTagIDs(ctx, tag, append(ids, id)); err != nil {
			return nil, b.fail(ctx, "add_post", err)
		}
	}

	observability.RecordBoardOp("add_post", "success")
	b.log.LogOp(ctx, "add_post", string(caller), map[string]interface{}{"post_id": id})
	return post, nil
}

// visiblePosts scans the whole post collection, decodes each aggregate and
// keeps those passing the visibility filter, ordered by id.
func (b *Board) visiblePosts(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := b.kv.ForEach(ctx, store.BucketPosts, func(key string, value []byte) error {
		var post models.Post
		if err := json.Unmarshal(value, &post); err != nil {
			return fmt.Errorf("decode post %s: %w", key, err)
		}
		if view, ok := visibleView(&post); ok {
			posts = append(posts, view)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

// GetAllPosts lists every visible post.
func (b *Board) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := b.visiblePosts(ctx)
	if err != nil {
		return nil, b.fail(ctx, "get_all_post", err)
	}
	observability.RecordBoardOp("get_all_post", "success")
	return posts, nil
}

// SearchPosts returns visible posts whose title or content contains q.
// The match is a case-sensitive substring test.
func (b *Board) SearchPosts(ctx context.Context, q string) ([]*models.Post, error) {
	posts, err := b.visiblePosts(ctx)
	if err != nil {
		return nil, b.fail(ctx, "search_post", err)
	}
	var out []*models.Post
	for _, p := range posts {
		if strings.Contains(p.Title, q) || strings.Contains(p.Content, q) {
			out = append(out, p)
		}
	}
	observability.RecordBoardOp("search_post", "success")
	return out, nil
}

// SearchPostsByTags returns visible posts whose own tag list contains every
// requested tag. The secondary index plays no part in correctness here.
func (b *Board) SearchPostsByTags(ctx context.Context, tags []string) ([]*models.Post, error) {
	posts, err := b.visiblePosts(ctx)
	if err != nil {
		return nil, b.fail(ctx, "search_post_by_tags", err)
	}
	var out []*models.Post
	for _, p := range posts {
		if p.HasAllTags(tags) {
			out = append(out, p)
		}
	}
	observability.RecordBoardOp("search_post_by_tags", "success")
	return out, nil
}

// SearchPostsByCreator returns visible posts created by the given account.
func (b *Board) SearchPostsByCreator(ctx context.Context, creator models.AccountID) ([]*models.Post, error) {
	posts, err := b.visiblePosts(ctx)
	if err != nil {
		return nil, b.fail(ctx, "search_post_by_user_id", err)
	}
	var out []*models.Post
	for _, p := range posts {
		if p.Creator == creator {
			out = append(out, p)
		}
	}
	observability.RecordBoardOp("search_post_by_user_id", "success")
	return out, nil
}

// PostsByTag resolves a single tag through the secondary index and
// cross-validates every id against the live post collection. The index is
// additive-only, so ids of removed or retagged posts are silently skipped
// here rather than pruned.
func (b *Board) PostsByTag(ctx context.Context, tag string) ([]*models.Post, error) {
	ids, err := b.tagIDs(ctx, tag)
	if err != nil {
		return nil, b.fail(ctx, "posts_by_tag", err)
	}
	seen := make(map[uint64]bool, len(ids))
	var out []*models.Post
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		post, ok, err := b.getPost(ctx, id)
		if err != nil {
			return nil, b.fail(ctx, "posts_by_tag", err)
		}
		if !ok {
			continue
		}
		view, visible := visibleView(post)
		if !visible || !view.HasAllTags([]string{tag}) {
			continue
		}
		out = append(out, view)
	}
	observability.RecordBoardOp("posts_by_tag", "success")
	return out, nil
}

// fail records and wraps a store or codec failure. These are ordinary
// errors, distinct from the two sentinel outcomes.
func (b *Board) fail(ctx context.Context, op string, err error) error {
	observability.RecordBoardOp(op, "error")
	b.log.LogError(ctx, op, err)
	return models.NewInternalError(err)
}

// reject records a sentinel outcome without mutating state.
func (b *Board) reject(ctx context.Context, op string, caller models.AccountID, sentinel *models.AppError) error {
	outcome := "no_permission"
	if sentinel.Code == models.CodeNotFound {
		outcome = "not_found"
	}
	observability.RecordBoardOp(op, outcome)
	b.log.LogRejected(ctx, op, string(caller), outcome)
	return sentinel
}
