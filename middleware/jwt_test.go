package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mdv314/claritas-learning/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestConfig() {
	config.AppConfig = &config.Config{
		Env:    "test",
		JWTKey: "test-secret",
	}
}

func testApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": UserID(c)})
	})
	app.Get("/open", AuthOptional, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": UserID(c)})
	})
	return app
}

func TestAuthRequiredRejectsMissingCookie(t *testing.T) {
	setupTestConfig()
	app := testApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "Not authenticated", payload["error"])
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	setupTestConfig()
	app := testApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "not-a-jwt"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	setupTestConfig()
	app := testApp()

	token, err := GenerateJWT(7, "Ada", "ada@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]uint
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, uint(7), payload["user_id"])
}

func TestAuthRequiredRejectsTokenSignedWithOtherKey(t *testing.T) {
	setupTestConfig()
	token, err := GenerateJWT(7, "Ada", "ada@example.com")
	require.NoError(t, err)

	config.AppConfig.JWTKey = "rotated-secret"
	app := testApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthOptionalPassesAnonymous(t *testing.T) {
	setupTestConfig()
	app := testApp()

	req := httptest.NewRequest("GET", "/open", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]uint
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, uint(0), payload["user_id"])
}

func TestAuthOptionalResolvesValidToken(t *testing.T) {
	setupTestConfig()
	app := testApp()

	token, err := GenerateJWT(12, "Ada", "ada@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/open", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]uint
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, uint(12), payload["user_id"])
}
