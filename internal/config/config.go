package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingBaseURL = errors.New("API_BASE_URL is not set")
	ErrNegativeValue  = errors.New("configuration value must not be negative")
)

type Config struct {
	APIBaseURL        string
	AppEnv            string
	TokenFile         string
	APITimeout        time.Duration
	APIRateLimit      float64
	APIRateBurst      int
	CacheSize         int
	CacheTTL          time.Duration
	ImageMaxDimension int
	ImageQuality      int
	MockAPIAddr       string
	MockAPISecret     string
	MockAPITokenTTL   time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_BASE_URL", "http://localhost:5000/api/v1")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("TOKEN_FILE", ".catalog-admin/token.json")
	v.SetDefault("API_TIMEOUT", "0s")
	v.SetDefault("API_RATE_LIMIT", 0)
	v.SetDefault("API_RATE_BURST", 1)
	v.SetDefault("CACHE_SIZE", 256)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("IMAGE_MAX_DIMENSION", 0)
	v.SetDefault("IMAGE_QUALITY", 80)
	v.SetDefault("MOCK_API_ADDR", ":5000")
	v.SetDefault("MOCK_API_SECRET", "catalog-admin-dev-secret")
	v.SetDefault("MOCK_API_TOKEN_TTL", "24h")
}

// LoadConfig reads .env (if present), the process environment and an
// optional yaml file named by CONFIG_FILE. Environment wins over the file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		APIBaseURL:        v.GetString("API_BASE_URL"),
		AppEnv:            v.GetString("APP_ENV"),
		TokenFile:         v.GetString("TOKEN_FILE"),
		APITimeout:        v.GetDuration("API_TIMEOUT"),
		APIRateLimit:      v.GetFloat64("API_RATE_LIMIT"),
		APIRateBurst:      v.GetInt("API_RATE_BURST"),
		CacheSize:         v.GetInt("CACHE_SIZE"),
		CacheTTL:          v.GetDuration("CACHE_TTL"),
		ImageMaxDimension: v.GetInt("IMAGE_MAX_DIMENSION"),
		ImageQuality:      v.GetInt("IMAGE_QUALITY"),
		MockAPIAddr:       v.GetString("MOCK_API_ADDR"),
		MockAPISecret:     v.GetString("MOCK_API_SECRET"),
		MockAPITokenTTL:   v.GetDuration("MOCK_API_TOKEN_TTL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.APITimeout < 0 || c.APIRateLimit < 0 || c.APIRateBurst < 0 ||
		c.CacheSize < 0 || c.CacheTTL < 0 || c.ImageMaxDimension < 0 || c.MockAPITokenTTL < 0 {
		return ErrNegativeValue
	}
	if c.ImageQuality < 1 || c.ImageQuality > 100 {
		return fmt.Errorf("IMAGE_QUALITY must be between 1 and 100, got %d", c.ImageQuality)
	}
	return nil
}
