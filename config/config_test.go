package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/codev")
	t.Setenv("FRONTEND_URL", "https://portal.example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/codev", cfg.DBUrl)
	assert.Equal(t, "https://portal.example.com", cfg.FrontendURL)
	assert.Equal(t, 12, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Equal(t, 5*time.Minute, cfg.DirectoryCacheTTL)
	assert.Equal(t, "@every 5m", cfg.DirectoryRefreshSpec)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DIRECTORY_CACHE_TTL_SECONDS", "30")
	t.Setenv("DEFAULT_PAGE_SIZE", "24")
	t.Setenv("MAX_PAGE_SIZE", "5000")
	t.Setenv("RATE_LIMIT_GLOBAL_THRESHOLD", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.DirectoryCacheTTL)
	assert.Equal(t, 24, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Equal(t, 100, cfg.RateLimitGlobalThreshold)
}

func TestLoadConfigDefaultPageSizeFollowsMax(t *testing.T) {
	t.Setenv("MAX_PAGE_SIZE", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxPageSize)
	assert.Equal(t, 5, cfg.DefaultPageSize)

	t.Setenv("DEFAULT_PAGE_SIZE", "0")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.DefaultPageSize)
}
