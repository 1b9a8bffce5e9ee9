package board

import (
	"context"

	"bulletin/internal/models"
	"bulletin/internal/observability"
)

// LikePost appends caller to the post's liking list and rewrites the
// aggregate. Only Open posts accrue likes. The append is unconditional:
// repeated likes from the same caller stack up rather than deduplicate,
// matching the store's documented behavior.
func (b *Board) LikePost(ctx context.Context, caller models.AccountID, id uint64) (*models.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	post, ok, err := b.getPost(ctx, id)
	if err != nil {
		return nil, b.fail(ctx, "like_post", err)
	}
	if !ok {
		return nil, b.reject(ctx, "like_post", caller, models.NewNotFoundError("post", id))
	}
	if post.Status != models.StatusOpen {
		return nil, b.reject(ctx, "like_post", caller, models.NewNoPermissionError())
	}

	post.LikedBy = append(post.LikedBy, caller)
	if err := b.putPost(ctx, post); err != nil {
		return nil, b.fail(ctx, "like_post", err)
	}

	observability.RecordBoardOp("like_post", "success")
	b.log.LogOp(ctx, "like_post", string(caller), map[string]interface{}{"post_id": id})
	view, _ := visibleView(post)
	return view, nil
}

// UnlikePost removes exactly the first occurrence of caller from the liking
// list. An absent caller is a NotFound outcome; the post stays untouched.
func (b *Board) UnlikePost(ctx context.Context, caller models.AccountID, id uint64) (*models.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	post, ok, err := b.getPost(ctx, id)
	if err != nil {
		return nil, b.fail(ctx, "unlike_post", err)
	}
	if !ok {
		return nil, b.reject(ctx, "unlike_post", caller, models.NewNotFoundError("post", id))
	}
	if post.Status != models.StatusOpen {
		return nil, b.reject(ctx, "unlike_post", caller, models.NewNoPermissionError())
	}

	at := -1
	for i, who := range post.LikedBy {
		if who == caller {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, b.reject(ctx, "unlike_post", caller, models.NewNotFoundError("like by", caller))
	}

	post.LikedBy = append(post.LikedBy[:at], post.LikedBy[at+1:]...)
	if err := b.putPost(ctx, post); err != nil {
		return nil, b.fail(ctx, "unlike_post", err)
	}

	observability.RecordBoardOp("unlike_post", "success")
	b.log.LogOp(ctx, "unlike_post", string(caller), map[string]interface{}{"post_id": id})
	view, _ := visibleView(post)
	return view, nil
}
