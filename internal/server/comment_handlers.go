package server

import (
	"bulletin/internal/models"
	"bulletin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
// Without comment_index the comment lands on the post itself; with it the
// content becomes a reply under that comment.
func (s *Server) CreateComment(c *fiber.Ctx) error {
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
		Content      string `json:"content"`
		CommentIndex *int   `json:"comment_index"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.boardService.AddComment(ctx, service.AddCommentInput{
		Caller:       caller,
		PostID:       postID,
		CommentIndex: req.CommentIndex,
		Content:      req.Content,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdateComment handles PUT /api/posts/:id/comments/:commentIndex
// With sub_comment_index in the body the edit targets a reply instead.
// An empty status keeps the current one; content changes only apply while
// the target stays Open.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	caller, err := s.caller(c)
	if err != nil {
		return nil
	}
	postID, err := s.parsePostID(c)
	if err != nil {
		return nil
	}
	commentIndex, err := s.parseIndex(c, "commentIndex")
	if err != nil {
		return nil
	}

	var req struct {
		Content         *string `json:"content"`
		Status          string  `json:"status"`
		SubCommentIndex *int    `json:"sub_comment_index"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.boardService.EditComment(ctx, service.EditCommentInput{
		Caller:          caller,
		PostID:          postID,
		CommentIndex:    commentIndex,
		SubCommentIndex: req.SubCommentIndex,
		Content:         req.Content,
		Status:          req.Status,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(post)
}
