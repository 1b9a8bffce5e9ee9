// Package service applies input validation and caching on top of the board.
package service

import (
	"context"
	"strings"

	"bulletin/internal/cache"
	"bulletin/internal/models"
	"bulletin/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// BoardAPI is the subset of board operations the service layer depends on.
type BoardAPI interface {
	AddPost(ctx context.Context, caller models.AccountID, title, content string, tags []string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]*models.Post, error)
	SearchPosts(ctx context.Context, q string) ([]*models.Post, error)
	SearchPostsByTags(ctx context.Context, tags []string) ([]*models.Post, error)
	SearchPostsByCreator(ctx context.Context, creator models.AccountID) ([]*models.Post, error)
	PostsByTag(ctx context.Context, tag string) ([]*models.Post, error)
	EditPost(ctx context.Context, caller models.AccountID, id uint64, title, content *string, tags []string, statusName string) (*models.Post, error)
	AddComment(ctx context.Context, caller models.AccountID, postID uint64, commentIndex *int, content string) (*models.Post, error)
	EditComment(ctx context.Context, caller models.AccountID, postID uint64, commentIndex int, subCommentIndex *int, content *string, statusName string) (*models.Post, error)
	LikePost(ctx context.Context, caller models.AccountID, id uint64) (*models.Post, error)
	UnlikePost(ctx context.Context, caller models.AccountID, id uint64) (*models.Post, error)
}

type BoardService struct {
	board BoardAPI
}

type CreatePostInput struct {
	Caller  models.AccountID
	Title   string
	Content string
	Tags    []string
}

type EditPostInput struct {
	Caller  models.AccountID
	PostID  uint64
	Title   *string
	Content *string
	Tags    []string
	Status  string
}

type AddCommentInput struct {
	Caller       models.AccountID
	PostID       uint64
	CommentIndex *int
	Content      string
}

type EditCommentInput struct {
	Caller          models.AccountID
	PostID          uint64
	CommentIndex    int
	SubCommentIndex *int
	Content         *string
	Status          string
}

func NewBoardService(board BoardAPI) *BoardService {
	return &BoardService{board: board}
}

const (
	maxTitleLen   = 300
	maxContentLen = 50000
	maxTagLen     = 64
	maxTags       = 16
)

func validateTags(tags []string) error {
	if len(tags) > maxTags {
		return models.NewValidationError("Too many tags (max 16)")
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return models.NewValidationError("Tags must not be blank")
		}
		if len(tag) > maxTagLen {
			return models.NewValidationError("Tag too long (max 64 characters)")
		}
	}
	return nil
}

func (s *BoardService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "board.create_post")
	defer span.End()
	span.AddAttributes(attribute.String("caller", string(in.Caller)))

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	if err := validateTags(in.Tags); err != nil {
		return nil, err
	}

	post, err := s.board.AddPost(ctx, in.Caller, in.Title, in.Content, in.Tags)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	cache.InvalidatePostsList(ctx)
	return post, nil
}

// ListPosts returns all visible posts, served from the listing cache when warm.
func (s *BoardService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "board.list_posts")
	defer span.End()

	var cached []*models.Post
	if cache.GetJSON(ctx, cache.PostsListKey, &cached) {
		return cached, nil
	}

	posts, err := s.board.GetAllPosts(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	cache.SetJSON(ctx, cache.PostsListKey, posts, cache.DefaultTTL)
	return posts, nil
}

func (s *BoardService) SearchPosts(ctx context.Context, query string) ([]*models.Post, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.board.SearchPosts(ctx, query)
}

func (s *BoardService) SearchPostsByTags(ctx context.Context, tags []string) ([]*models.Post, error) {
	if len(tags) == 0 {
		return nil, models.NewValidationError("At least one tag is required")
	}
	if err := validateTags(tags); err != nil {
		return nil, err
	}
	return s.board.SearchPostsByTags(ctx, tags)
}

func (s *BoardService) SearchPostsByCreator(ctx context.Context, creator models.AccountID) ([]*models.Post, error) {
	if creator == "" {
		return nil, models.NewValidationError("Creator account ID is required")
	}
	return s.board.SearchPostsByCreator(ctx, creator)
}

func (s *BoardService) PostsByTag(ctx context.Context, tag string) ([]*models.Post, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, models.NewValidationError("Tag is required")
	}
	return s.board.PostsByTag(ctx, tag)
}

func (s *BoardService) EditPost(ctx context.Context, in EditPostInput) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "board.edit_post")
	defer span.End()
	span.AddAttributes(
		attribute.String("caller", string(in.Caller)),
		attribute.Int64("post_id", int64(in.PostID)),
	)

	if in.Title != nil && *in.Title == "" {
		return nil, models.NewValidationError("Title must not be blank")
	}
	if in.Title != nil && len(*in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content != nil && len(*in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	// Status is not pre-validated here: the board treats anything outside
	// its lifecycle states, the empty string included, as NoPermission.
	if err := validateTags(in.Tags); err != nil {
		return nil, err
	}

	post, err := s.board.EditPost(ctx, in.Caller, in.PostID, in.Title, in.Content, in.Tags, in.Status)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	cache.InvalidatePostsList(ctx)
	return post, nil
}

func (s *BoardService) AddComment(ctx context.Context, in AddCommentInput) (*models.Post, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	if in.CommentIndex != nil && *in.CommentIndex < 0 {
		return nil, models.NewValidationError("Comment index must not be negative")
	}

	post, err := s.board.AddComment(ctx, in.Caller, in.PostID, in.CommentIndex, in.Content)
	if err != nil {
		return nil, err
	}
	cache.InvalidatePostsList(ctx)
	return post, nil
}

func (s *BoardService) EditComment(ctx context.Context, in EditCommentInput) (*models.Post, error) {
	if in.CommentIndex < 0 {
		return nil, models.NewValidationError("Comment index must not be negative")
	}
	if in.SubCommentIndex != nil && *in.SubCommentIndex < 0 {
		return nil, models.NewValidationError("Sub-comment index must not be negative")
	}
	if in.Content != nil && len(*in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	post, err := s.board.EditComment(ctx, in.Caller, in.PostID, in.CommentIndex, in.SubCommentIndex, in.Content, in.Status)
	if err != nil {
		return nil, err
	}
	cache.InvalidatePostsList(ctx)
	return post, nil
}

func (s *BoardService) LikePost(ctx context.Context, caller models.AccountID, id uint64) (*models.Post, error) {
	post, err := s.board.LikePost(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	cache.InvalidatePostsList(ctx)
	return post, nil
}

func (s *BoardService) UnlikePost(ctx context.Context, caller models.AccountID, id uint64) (*models.Post, error) {
	post, err := s.board.UnlikePost(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	cache.InvalidatePostsList(ctx)
	return post, nil
}
