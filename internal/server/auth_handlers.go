package server

import (
	"fmt"
	"regexp"
	"time"

	"bulletin/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// accountIDPattern matches NEAR-style account IDs: lowercase alphanumeric
// segments separated by single dots, dashes or underscores inside segments.
var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

// IssueToken handles POST /api/auth/token
// Callers are identified by account ID alone; there are no stored
// credentials. This mirrors a signed-transaction model where the runtime
// vouches for the sender identity.
func (s *Server) IssueToken(c *fiber.Ctx) error {
	var req struct {
		AccountID string `json:"account_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.AccountID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("account_id is required"))
	}
	if len(req.AccountID) < 2 || len(req.AccountID) > 64 || !accountIDPattern.MatchString(req.AccountID) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("account_id is not a valid account name"))
	}

	token, expiresAt, err := s.generateToken(models.AccountID(req.AccountID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token":      token,
		"account_id": req.AccountID,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}

// generateToken creates a signed JWT for the given account.
func (s *Server) generateToken(account models.AccountID) (string, time.Time, error) {
	expiresAt := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"sub": string(account),
		"iss": "bulletin-api",
		"aud": "bulletin-client",
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
		"jti": s.generateJTI(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	return signed, expiresAt, err
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
