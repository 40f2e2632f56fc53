package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api.test/api/v1")
		t.Setenv("APP_ENV", "test")
		t.Setenv("TOKEN_FILE", "/tmp/token.json")
		t.Setenv("API_TIMEOUT", "15s")
		t.Setenv("API_RATE_LIMIT", "2.5")
		t.Setenv("API_RATE_BURST", "5")
		t.Setenv("CACHE_SIZE", "32")
		t.Setenv("CACHE_TTL", "1m")
		t.Setenv("IMAGE_MAX_DIMENSION", "800")
		t.Setenv("IMAGE_QUALITY", "75")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "http://api.test/api/v1", cfg.APIBaseURL)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "/tmp/token.json", cfg.TokenFile)
		assert.Equal(t, 15*time.Second, cfg.APITimeout)
		assert.Equal(t, 2.5, cfg.APIRateLimit)
		assert.Equal(t, 5, cfg.APIRateBurst)
		assert.Equal(t, 32, cfg.CacheSize)
		assert.Equal(t, time.Minute, cfg.CacheTTL)
		assert.Equal(t, 800, cfg.ImageMaxDimension)
		assert.Equal(t, 75, cfg.ImageQuality)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api.test")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), cfg.APITimeout)
		assert.Equal(t, 0, cfg.ImageMaxDimension)
		assert.Equal(t, 80, cfg.ImageQuality)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
		assert.Equal(t, ":5000", cfg.MockAPIAddr)
		assert.Equal(t, 24*time.Hour, cfg.MockAPITokenTTL)
	})

	t.Run("Config file", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "catalog.yaml")
		require.NoError(t, os.WriteFile(file, []byte("API_BASE_URL: http://from-file\nCACHE_SIZE: 8\n"), 0o644))
		t.Setenv("CONFIG_FILE", file)
		t.Setenv("API_BASE_URL", "")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8, cfg.CacheSize)
	})

	t.Run("Missing config file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := LoadConfig()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{APIBaseURL: "http://x", ImageQuality: 80}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.APIBaseURL = ""
	assert.ErrorIs(t, missing.Validate(), ErrMissingBaseURL)

	negative := valid
	negative.CacheSize = -1
	assert.ErrorIs(t, negative.Validate(), ErrNegativeValue)

	quality := valid
	quality.ImageQuality = 0
	assert.Error(t, quality.Validate())
}
