package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	userID, _ := decoded.Get("user_id")
	assert.Equal(t, "user-1", userID)
	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestParseRefreshToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	refresh, _, err := svc.GenerateRefreshToken("user-2")
	require.NoError(t, err)

	userID, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-2", userID)

	// An access token must not pass as a refresh token.
	access, _, err := svc.GenerateAccessToken("user-2", "bob@example.com")
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(access)
	assert.Error(t, err)
}

func TestRevocation(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	refresh, _, err := svc.GenerateRefreshToken("user-3")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(refresh))
	svc.RevokeToken(refresh)
	assert.True(t, svc.IsTokenRevoked(refresh))
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService(testSecret, "-2m", "24h")

	token, _, err := svc.GenerateAccessToken("user-4", "carol@example.com")
	require.NoError(t, err)

	_, err = svc.JWTAuth().Decode(token)
	assert.Error(t, err)
}
