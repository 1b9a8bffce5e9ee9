package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bulletin/internal/config"
	"bulletin/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

// newTestServer builds a server on the in-memory store with routes registered.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	cfg := &config.Config{
		JWTSecret:    testSecret,
		StoreBackend: "memory",
		Env:          "test",
	}
	s := NewServerWithDeps(cfg, nil, nil)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// authHeader returns a Bearer header value for the given account.
func authHeader(t *testing.T, s *Server, account models.AccountID) string {
	t.Helper()
	token, _, err := s.generateToken(account)
	require.NoError(t, err)
	return "Bearer " + token
}

// doJSON performs a request with an optional JSON body and auth header.
func doJSON(t *testing.T, app *fiber.App, method, path, auth string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodePost reads a post payload from the response body.
func decodePost(t *testing.T, resp *http.Response) *models.Post {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var post models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
	return &post
}

// decodePosts reads a post listing from the response body.
func decodePosts(t *testing.T, resp *http.Response) []*models.Post {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var posts []*models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	return posts
}

// createPost posts a new entry and returns the created aggregate.
func createPost(t *testing.T, app *fiber.App, auth, title, content string, tags []string) *models.Post {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/posts", auth, fiber.Map{
		"title":   title,
		"content": content,
		"tags":    tags,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodePost(t, resp)
}
