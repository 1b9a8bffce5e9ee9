package server

import (
	"errors"
	"strconv"

	"bulletin/internal/middleware"
	"bulletin/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePostID extracts the :id route parameter as a post identifier.
// Post IDs start at zero, so only negative or non-numeric values are invalid.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parsePostID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
		return 0, errResponseWritten
	}
	return id, nil
}

// parseIndex extracts a route parameter as a non-negative slice index.
func (s *Server) parseIndex(c *fiber.Ctx, param string) (int, error) {
	idx, err := strconv.Atoi(c.Params(param))
	if err != nil || idx < 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment index"))
		return 0, errResponseWritten
	}
	return idx, nil
}

// caller returns the authenticated account ID. Routes behind AuthRequired
// always have one; the fallback guards misconfigured route wiring.
func (s *Server) caller(c *fiber.Ctx) (models.AccountID, error) {
	id, ok := middleware.CallerID(c)
	if !ok {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewNoPermissionError())
		return "", errResponseWritten
	}
	return id, nil
}

// respondAppError maps a board or service error onto its HTTP status.
func respondAppError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}
