package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weatherapi/internal/middleware"
	"weatherapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProtectedApp(tokens *services.TokenService) *fiber.App {
	app := fiber.New()
	app.Get("/me", middleware.AuthRequired(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": middleware.CurrentUserID(c)})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	tokens := services.NewTokenService("test_jwt_secret", time.Hour)
	app := setupProtectedApp(tokens)

	valid, err := tokens.Issue("user-123")
	require.NoError(t, err)
	expired, err := services.NewTokenService("test_jwt_secret", -time.Hour).Issue("user-123")
	require.NoError(t, err)
	forged, err := services.NewTokenService("other_secret", time.Hour).Issue("user-123")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, `{"user_id":"user-123"}`},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, `{"user_id":"user-123"}`},
		{"missing header", "", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"no token", "Bearer ", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"forged token", "Bearer " + forged, http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"garbage token", "Bearer invalid.token.string", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantBody, string(body))
		})
	}
}

func TestCurrentUserID_Unauthenticated(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": middleware.CurrentUserID(c)})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "", body["user_id"])
}
