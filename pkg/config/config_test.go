package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3690", cfg.Port)
	assert.Equal(t, "ezbase_data.ezbs", cfg.DataFile)
	assert.Equal(t, "user_key", cfg.AuthSecret)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.Equal(t, 10*time.Second, cfg.OAuthTimeout)
	assert.False(t, cfg.OAuthConfigured())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("EZBASE_PORT", "9090")
	t.Setenv("USER_AUTH_KEY", "super-secret")
	t.Setenv("EZBASE_TOKEN_TTL", "24h")
	t.Setenv("CLIENT_ID", "id")
	t.Setenv("CLIENT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "super-secret", cfg.AuthSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.OAuthConfigured())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("EZBASE_TOKEN_TTL", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}
