package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindhaven/guardrail/pkg/config"
	"github.com/mindhaven/guardrail/pkg/infra/jwt"
)

func setupAuthApp(t *testing.T) (*fiber.App, jwt.Manager) {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	jwtManager := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "test-secret"})
	mw := NewAdminAuthMiddleware(logger, jwtManager)

	app := fiber.New()
	app.Get("/admin", mw.Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, jwtManager
}

func TestAdminAuthMiddleware_MissingHeader(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthMiddleware_NonBearerHeader(t *testing.T) {
	app, _ := setupAuthApp(t)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthMiddleware_InvalidToken(t *testing.T) {
	app, _ := setupAuthApp(t)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthMiddleware_ValidToken(t *testing.T) {
	app, jwtManager := setupAuthApp(t)

	token, err := jwtManager.CreateToken()
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
