package board

import (
	"context"

	"bulletin/internal/models"
	"bulletin/internal/observability"
)

// EditPost edits the post's content fields and/or requests a status
// transition. A single call may do both, but when the requested status is
// Locked or Removed the lifecycle change takes precedence and the content
// arguments are ignored. Nil content arguments keep the current values.
//
// A malformed status name, a non-creator caller and a transition outside the
// lifecycle table all collapse into the same NoPermission outcome.
func (b *Board) EditPost(ctx context.Context, caller models.AccountID, id uint64, title, content *string, tags []string, statusName string) (*models.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	post, ok, err := b.getPost(ctx, id)
	if err != nil {
		return nil, b.fail(ctx, "edit_post", err)
	}
	if !ok {
		return nil, b.reject(ctx, "edit_post", caller, models.NewNotFoundError("post", id))
	}

	requested, valid := models.ParseStatus(statusName)
	if !valid {
		return nil, b.reject(ctx, "edit_post", caller, models.NewNoPermissionError())
	}
	if !canMutate(caller, post.Creator, post.Status, requested) {
		return nil, b.reject(ctx, "edit_post", caller, models.NewNoPermissionError())
	}

	if requested == models.StatusOpen {
		if title != nil {
			post.Title = *title
		}
		if content != nil {
			post.Content = *content
		}
		if tags != nil {
			// The tag index is maintained on creation only; edits never
			// touch it, so stale ids may linger under old tags.
			post.Tags = append([]string(nil), tags...)
		}
	}
	post.Status = requested

	if err := b.putPost(ctx, post); err != nil {
		return nil, b.fail(ctx, "edit_post", err)
	}

	observability.RecordBoardOp("edit_post", "success")
	b.log.LogOp(ctx, "edit_post", string(caller), map[string]interface{}{
		"post_id": id,
		"status":  string(requested),
	})
	return post, nil
}

// AddComment appends a new Open comment to the post (commentIndex nil) or a
// new Open sub-comment to the addressed comment (commentIndex set). Appending
// requires the post, and at depth 2 the parent comment, to be Open. Entries
// always append at the end, so positional indices never shift.
func (b *Board) AddComment(ctx context.Context, caller models.AccountID, postID uint64, commentIndex *int, content string) (*models.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	post, ok, err := b.getPost(ctx, postID)
	if err != nil {
		return nil, b.fail(ctx, "add_comment", err)
	}
	if !ok {
		return nil, b.reject(ctx, "add_comment", caller, models.NewNotFoundError("post", postID))
	}
	if post.Status != models.StatusOpen {
		return nil, b.reject(ctx, "add_comment", caller, models.NewNoPermissionError())
	}

	if commentIndex == nil {
		post.Comments = append(post.Comments, models.Comment{
			Creator:     caller,
			Content:     content,
			LikedBy:     []models.AccountID{},
			Status:      models.StatusOpen,
			SubComments: []models.SubComment{},
		})
	} else {
		idx := *commentIndex
		if idx < 0 || idx >= len(post.Comments) {
			return nil, b.reject(ctx, "add_comment", caller, models.NewNotFoundError("comment", idx))
		}
		parent := &post.Comments[idx]
		if parent.Status != models.StatusOpen {
			return nil, b.reject(ctx, "add_comment", caller, models.NewNoPermissionError())
		}
		parent.SubComments = append(parent.SubComments, models.SubComment{
			Creator: caller,
			Content: content,
			LikedBy: []models.AccountID{},
			Status:  models.StatusOpen,
		})
	}

	if err := b.putPost(ctx, post); err != nil {
		return nil, b.fail(ctx, "add_comment", err)
	}

	observability.RecordBoardOp("add_comment", "success")
	b.log.LogOp(ctx, "add_comment", string(caller), map[string]interface{}{"post_id": postID})
	view, _ := visibleView(post)
	return view, nil
}

// EditComment locates a comment (depth 1) or sub-comment (depth 2) by
// position, applies the per-entity lifecycle and access policy, mutates the
// single addressed entity and rewrites the whole post aggregate. Every
// sibling and ancestor comes back otherwise identical.
//
// An empty statusName keeps the entity's current status, which still routes
// through the transition table: content replacement is therefore only
// possible while the entity is Open. Out-of-range indices are NotFound, as
// is a post that is Removed and thus excluded from every read path.
func (b *Board) EditComment(ctx context.Context, caller models.AccountID, postID uint64, commentIndex int, subCommentIndex *int, content *string, statusName string) (*models.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	post, ok, err := b.getPost(ctx, postID)
	if err != nil {
		return nil, b.fail(ctx, "edit_comment", err)
	}
	if !ok || post.Status == models.StatusRemoved {
		return nil, b.reject(ctx, "edit_comment", caller, models.NewNotFoundError("post", postID))
	}

	if commentIndex < 0 || commentIndex >= len(post.Comments) {
		return nil, b.reject(ctx, "edit_comment", caller, models.NewNotFoundError("comment", commentIndex))
	}

	var creator models.AccountID
	var current models.Status
	var subIdx int
	if subCommentIndex == nil {
		c := &post.Comments[commentIndex]
		creator, current = c.Creator, c.Status
	} else {
		subIdx = *subCommentIndex
		c := &post.Comments[commentIndex]
		if subIdx < 0 || subIdx >= len(c.SubComments) {
			return nil, b.reject(ctx, "edit_comment", caller, models.NewNotFoundError("sub-comment", subIdx))
		}
		sc := &c.SubComments[subIdx]
		creator, current = sc.Creator, sc.Status
	}

	requested := current
	if statusName != "" {
		parsed, valid := models.ParseStatus(statusName)
		if !valid {
			return nil, b.reject(ctx, "edit_comment", caller, models.NewNoPermissionError())
		}
		requested = parsed
	}

	if !canMutate(caller, creator, current, requested) {
		return nil, b.reject(ctx, "edit_comment", caller, models.NewNoPermissionError())
	}

	if subCommentIndex == nil {
		c := &post.Comments[commentIndex]
		if requested == models.StatusOpen && content != nil {
			c.Content = *content
		}
		c.Status = requested
	} else {
		sc := &post.Comments[commentIndex].SubComments[subIdx]
		if requested == models.StatusOpen && content != nil {
			sc.Content = *content
		}
		sc.Status = requested
	}

	if err := b.putPost(ctx, post); err != nil {
		return nil, b.fail(ctx, "edit_comment", err)
	}

	observability.RecordBoardOp("edit_comment", "success")
	b.log.LogOp(ctx, "edit_comment", string(caller), map[string]interface{}{
		"post_id":       postID,
		"comment_index": commentIndex,
		"status":        string(requested),
	})
	return post, nil
}
