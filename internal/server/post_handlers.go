package server

import (
	"strings"

	"bulletin/internal/models"
	"bulletin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	caller, err := s.caller(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.boardService.CreatePost(ctx, service.CreatePostInput{
		Caller:  caller,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
// With a tags query parameter it filters to posts carrying every listed tag.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	if tagsParam := c.Query("tags"); tagsParam != "" {
		tags := strings.Split(tagsParam, ",")
		posts, err := s.boardService.SearchPostsByTags(ctx, tags)
		if err != nil {
			return respondAppError(c, err)
		}
		return c.JSON(posts)
	}

	posts, err := s.boardService.ListPosts(ctx)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(posts)
}

// SearchPosts handles GET /api/posts/search?q=...
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	q := c.Query("q")

	posts, err := s.boardService.SearchPosts(ctx, q)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(posts)
}

// GetPostsByCreator handles GET /api/posts/by-creator/:account
func (s *Server) GetPostsByCreator(c *fiber.Ctx) error {
	ctx := c.Context()
	account := c.Params("account")

	posts, err := s.boardService.SearchPostsByCreator(ctx, models.AccountID(account))
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(posts)
}

// UpdatePost handles PUT /api/posts/:id
// Status must name a reachable lifecycle state or the edit is refused with
// 403; title, content and tags are optional. Content changes only apply on
// edits that keep the post Open.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	caller, err := s.caller(c)
	if err != nil {
		return nil
	}
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title   *string  `json:"title"`
		Content *string  `json:"content"`
		Tags    []string `json:"tags"`
		Status  string   `json:"status"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.boardService.EditPost(ctx, service.EditPostInput{
		Caller:  caller,
		PostID:  postID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Status:  req.Status,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(post)
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	caller, err := s.caller(c)
	if err != nil {
		return nil
	}
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	post, err := s.boardService.LikePost(ctx, caller, postID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(post)
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	caller, err := s.caller(c)
	if err != nil {
		return nil
	}
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	post, err := s.boardService.UnlikePost(ctx, caller, postID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(post)
}
