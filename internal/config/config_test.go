package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/market")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/market", cfg.DatabaseURL)
	assert.Equal(t, "https://steamcommunity.com", cfg.MarketURL)
	assert.Equal(t, "english", cfg.Language)
	assert.Equal(t, 1, cfg.Pages)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "small", cfg.ImageSize)
	assert.Equal(t, ModeMarkup, cfg.Mode)
	assert.Equal(t, time.Second, cfg.RateLimit)
	assert.True(t, cfg.RespectRobots)
	assert.NoError(t, cfg.Validate(false))
}

func TestLoad_overrides(t *testing.T) {
	t.Setenv("PAGES", "5")
	t.Setenv("MODE", "json")
	t.Setenv("RATE_LIMIT", "250ms")
	t.Setenv("MARKET_LANGUAGE", "german")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Pages)
	assert.Equal(t, ModeJSON, cfg.Mode)
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimit)
	assert.Equal(t, "german", cfg.Language)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{DatabaseURL: "postgres://x", Pages: 1, PageSize: 10, Mode: ModeMarkup, Language: "english", LogLevel: "info"}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		dryRun bool
		ok     bool
	}{
		{"valid", func(*Config) {}, false, true},
		{"no pages", func(c *Config) { c.Pages = 0 }, false, false},
		{"no page size", func(c *Config) { c.PageSize = 0 }, false, false},
		{"bad mode", func(c *Config) { c.Mode = "xml" }, false, false},
		{"browser needs json", func(c *Config) { c.Browser = true }, false, false},
		{"browser with json", func(c *Config) { c.Browser = true; c.Mode = ModeJSON }, false, true},
		{"bad language", func(c *Config) { c.Language = "klingon" }, false, false},
		{"no db", func(c *Config) { c.DatabaseURL = "" }, false, false},
		{"no db dry run", func(c *Config) { c.DatabaseURL = "" }, true, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate(tt.dryRun)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}
