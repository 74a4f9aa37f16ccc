package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret-key-for-testing-purposes"
	testRefreshSecret = "test-refresh-secret-key-for-testing-purposes"
)

func TestNewService(t *testing.T) {
	service := NewService(
		testAccessSecret,
		testRefreshSecret,
		time.Hour,
		24*time.Hour,
	)

	assert.NotNil(t, service)
	assert.Equal(t, testAccessSecret, service.accessSecret)
	assert.Equal(t, testRefreshSecret, service.refreshSecret)
	assert.Equal(t, time.Hour, service.accessTokenExpiry)
	assert.Equal(t, 24*time.Hour, service.refreshTokenExpiry)
}

func TestGenerateAccessToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	userID := uuid.New()
	username := "traveller42"

	token, err := service.GenerateAccessToken(userID, username)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validate the generated token
	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, username, claims.Username)
	assert.Equal(t, AccessToken, claims.TokenType)
}

func TestGenerateRefreshToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	userID := uuid.New()
	username := "traveller42"

	token, err := service.GenerateRefreshToken(userID, username)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validate the generated token
	claims, err := service.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, username, claims.Username)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateAccessToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	userID := uuid.New()
	username := "traveller42"

	// Generate valid token
	token, err := service.GenerateAccessToken(userID, username)
	require.NoError(t, err)

	// Test valid token
	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, username, claims.Username)

	// Test invalid token
	_, err = service.ValidateAccessToken("invalid.token.here")
	assert.Error(t, err)

	// Test token with wrong secret
	wrongService := NewService("wrong-secret", testRefreshSecret, time.Hour, 24*time.Hour)
	_, err = wrongService.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateToken_WrongType(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	userID := uuid.New()

	refreshToken, err := service.GenerateRefreshToken(userID, "traveller42")
	require.NoError(t, err)

	// A refresh token must not validate as an access token
	_, err = service.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)

	// Token signed with "none" must be rejected
	claims := Claims{
		UserID:    uuid.New(),
		Username:  "traveller42",
		TokenType: AccessToken,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}

func TestIsTokenExpired(t *testing.T) {
	userID := uuid.New()

	t.Run("Not expired", func(t *testing.T) {
		service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
		token, err := service.GenerateAccessToken(userID, "traveller42")
		require.NoError(t, err)

		assert.False(t, service.IsTokenExpired(token))
	})

	t.Run("Expired", func(t *testing.T) {
		service := NewService(testAccessSecret, testRefreshSecret, 1*time.Millisecond, 24*time.Hour)
		token, err := service.GenerateAccessToken(userID, "traveller42")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		assert.True(t, service.IsTokenExpired(token))
	})

	t.Run("Garbage token", func(t *testing.T) {
		service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
		assert.True(t, service.IsTokenExpired("not-a-token"))
	})
}
