package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("requires a JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "test-secret")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8091", cfg.ServerPort)
		assert.Equal(t, 12, cfg.PageSize)
		assert.Equal(t, "test-secret", cfg.SessionSecret)
		assert.Equal(t, 13, cfg.Map.Zoom)
		assert.InDelta(t, 9.712, cfg.Map.CenterLat, 1e-9)
		assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "test-secret")
		t.Setenv("PAGE_SIZE", "24")
		t.Setenv("API_TIMEOUT", "2s")
		t.Setenv("API_BASE_URL", "http://api.internal:8080")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 24, cfg.PageSize)
		assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
		assert.Equal(t, "http://api.internal:8080", cfg.Upstream.BaseURL)
	})

	t.Run("rejects a non-positive page size", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "test-secret")
		t.Setenv("PAGE_SIZE", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}
