package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheeldeal/config"
)

func TestJWTTokenRoundTrip(t *testing.T) {
	cfg := config.Config{JWT: config.JWT{Secret: "test-secret", ExpiredIn: 3600}}

	token, err := GenerateJWTToken("uid-1", "user@test.com", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := ParseJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", sub)
}

func TestParseJWTToken_WrongSecret(t *testing.T) {
	cfg := config.Config{JWT: config.JWT{Secret: "test-secret", ExpiredIn: 3600}}
	token, err := GenerateJWTToken("uid-1", "user@test.com", cfg)
	require.NoError(t, err)

	_, err = ParseJWTToken(token, config.Config{JWT: config.JWT{Secret: "other", ExpiredIn: 3600}})
	assert.Error(t, err)
}

func TestParseJWTToken_Expired(t *testing.T) {
	cfg := config.Config{JWT: config.JWT{Secret: "test-secret", ExpiredIn: -60}}
	token, err := GenerateJWTToken("uid-1", "user@test.com", cfg)
	require.NoError(t, err)

	_, err = ParseJWTToken(token, cfg)
	assert.Error(t, err)
}

func TestParseJWTToken_Garbage(t *testing.T) {
	cfg := config.Config{JWT: config.JWT{Secret: "test-secret", ExpiredIn: 3600}}
	_, err := ParseJWTToken("not.a.token", cfg)
	assert.Error(t, err)
}
