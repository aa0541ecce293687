package services_test

import (
	"testing"
	"time"

	"weatherapi/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test_jwt_secret"

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokenService := services.NewTokenService(testJWTSecret, time.Hour)

	token, err := tokenService.Issue("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := tokenService.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	// The claims are readable with the shared secret.
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Contains(t, claims, "exp")
	assert.Contains(t, claims, "iat")
}

func TestTokenService_VerifyExpired(t *testing.T) {
	expiredIssuer := services.NewTokenService(testJWTSecret, -time.Hour)
	token, err := expiredIssuer.Issue("user-123")
	require.NoError(t, err)

	_, err = services.NewTokenService(testJWTSecret, time.Hour).Verify(token)
	assert.ErrorIs(t, err, services.ErrExpiredToken)

	// Expiry wins over a bad signature.
	_, err = services.NewTokenService("another_secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, services.ErrExpiredToken)
}

func TestTokenService_VerifyInvalid(t *testing.T) {
	tokenService := services.NewTokenService(testJWTSecret, time.Hour)

	otherToken, err := services.NewTokenService("another_secret", time.Hour).Issue("user-123")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "invalid.token.string"},
		{"not a jwt", "garbage"},
		{"empty", ""},
		{"wrong secret", otherToken},
		{"alg none", noneToken},
		{"missing user_id", noSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := tokenService.Verify(tt.token)
			assert.ErrorIs(t, err, services.ErrInvalidToken)
			assert.Empty(t, userID)
		})
	}
}
