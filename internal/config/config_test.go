package config

import (
	"testing"
	"time"

	"logichain-web/internal/access"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, "http://localhost:8080/", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 24*time.Hour, cfg.SessionMaxAge)
	assert.False(t, cfg.ClearOnUnauthorized)
	assert.Equal(t, access.DenyNotFound, cfg.DenyMode)
	assert.Equal(t, 10, cfg.AuthAttemptsPerMinute)
	assert.Empty(t, cfg.DBDSN)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("API_TIMEOUT_SEC", "3")
	t.Setenv("SESSION_CLEAR_ON_UNAUTHORIZED", "true")
	t.Setenv("ACCESS_DENY_MODE", "forbidden")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.True(t, cfg.ClearOnUnauthorized)
	assert.Equal(t, access.DenyForbidden, cfg.DenyMode)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"SESSION_SECRET": ""}},
		{"short secret", map[string]string{"SESSION_SECRET": "short"}},
		{"bad timeout", map[string]string{"API_TIMEOUT_SEC": "soon"}},
		{"zero timeout", map[string]string{"API_TIMEOUT_SEC": "0"}},
		{"bad bool", map[string]string{"SESSION_SECURE": "maybe"}},
		{"bad deny mode", map[string]string{"ACCESS_DENY_MODE": "teapot"}},
		{"zero rate", map[string]string{"LOGIN_RATE_PER_MIN": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", "0123456789abcdef")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
