package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vfx-dashboard/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newProtectedApp(skipAuth bool, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{AuthMiddleware(skipAuth)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(GetClaims(c).Organization)
	})
	app.Get("/protected", handlers...)
	return app
}

func tokenFor(t *testing.T, isAdmin bool) string {
	t.Helper()
	utils.SetSecret("middleware-test")
	token, err := utils.GenerateToken(primitive.NewObjectID(), "lead@studio.test", "pixel-forge", isAdmin)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	app := newProtectedApp(false)

	t.Run("missing header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, false))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestAuthMiddlewareSkipAuth(t *testing.T) {
	app := newProtectedApp(true, AdminMiddleware())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminMiddleware(t *testing.T) {
	app := newProtectedApp(false, AdminMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, false))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, true))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware(), RequestLogger(zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(RequestID(c.UserContext()))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute})
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "keys are limited independently")

	now = now.Add(30 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "one token refills every 30s")

	now = now.Add(10 * time.Minute)
	rl.Allow("10.0.0.3")
	rl.mu.Lock()
	_, kept := rl.visitors["10.0.0.2"]
	rl.mu.Unlock()
	assert.False(t, kept, "idle keys are evicted")
}

func TestRateLimiterHandler(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute})
	app := fiber.New()
	app.Post("/login", rl.Handler(IPKeyExtractor), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get(fiber.HeaderRetryAfter))
}
