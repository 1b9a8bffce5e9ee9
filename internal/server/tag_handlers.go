package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetPostsByTag handles GET /api/tags/:tag/posts
// The tag index is additive-only, so entries are cross-checked against the
// live post before being returned.
func (s *Server) GetPostsByTag(c *fiber.Ctx) error {
	ctx := c.Context()
	tag := c.Params("tag")

	posts, err := s.boardService.PostsByTag(ctx, tag)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(posts)
}
