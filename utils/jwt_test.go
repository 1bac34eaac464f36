package utils

import (
	"testing"
	"time"

	"urbania/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenPairRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	access, refresh, err := GenerateTokenPair("user-1", "claire@example.fr")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	sub, err := ExtractIDFromToken(access, "access")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)

	sub, err = ExtractIDFromToken(refresh, "refresh")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestExtractIDRejectsWrongTokenType(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	access, refresh, err := GenerateTokenPair("user-1", "claire@example.fr")
	require.NoError(t, err)

	_, err = ExtractIDFromToken(refresh, "access")
	assert.Error(t, err, "refresh token must not authenticate requests")
	_, err = ExtractIDFromToken(access, "refresh")
	assert.Error(t, err)
}

func TestExtractIDRejectsExpiredToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user-1", "claire@example.fr", "access", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token, "access")
	assert.Error(t, err)
}

func TestExtractIDRejectsForeignSignature(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateToken("user-1", "claire@example.fr", "access", time.Minute)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "other-secret"
	_, err = ExtractIDFromToken(token, "access")
	assert.Error(t, err)
}

func TestHashTokenIsDeterministic(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
