package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"market-crawler/internal/crawler"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Extraction modes.
const (
	ModeMarkup = "markup"
	ModeTree   = "tree"
	ModeJSON   = "json"
)

type Config struct {
	// DatabaseURL maps to env var DB_URL. Only a dry run may leave it empty.
	DatabaseURL string `envconfig:"DB_URL"`
	TablePrefix string `envconfig:"TABLE_PREFIX" default:""`

	// DBConnectAttempts and DBConnectDelay control waiting for the database.
	DBConnectAttempts int           `envconfig:"DB_CONNECT_ATTEMPTS" default:"10"`
	DBConnectDelay    time.Duration `envconfig:"DB_CONNECT_DELAY" default:"2s"`

	MarketURL string `envconfig:"MARKET_URL" default:"https://steamcommunity.com"`
	CDNURL    string `envconfig:"CDN_URL" default:"https://community.cloudflare.steamstatic.com"`
	Language  string `envconfig:"MARKET_LANGUAGE" default:"english"`

	// Pages is the number of search pages per run, PageSize the rows per page.
	Pages     int    `envconfig:"PAGES" default:"1"`
	PageSize  int    `envconfig:"PAGE_SIZE" default:"10"`
	ImageSize string `envconfig:"IMAGE_SIZE" default:"small"`
	Mode      string `envconfig:"MODE" default:"markup"`

	// Browser fetches the JSON endpoint through headless Chrome.
	Browser bool `envconfig:"BROWSER" default:"false"`

	// RateLimit is the idle interval between two page fetches.
	RateLimit      time.Duration `envconfig:"RATE_LIMIT" default:"1s"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	UserAgent      string        `envconfig:"USER_AGENT" default:"MarketCrawler/1.0"`
	RespectRobots  bool          `envconfig:"RESPECT_ROBOTS" default:"true"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load processes environment variables and populates the Config struct.
func Load() (*Config, error) {
	// In Docker/K8s there is usually no .env file; vars are injected directly.
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Warn(".env file found but could not be loaded", "err", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings a run depends on. dryRun relaxes the
// database requirement.
func (c *Config) Validate(dryRun bool) error {
	switch {
	case c.Pages < 1:
		return fmt.Errorf("%w: PAGES must be at least 1, got %d", ErrInvalid, c.Pages)
	case c.PageSize < 1:
		return fmt.Errorf("%w: PAGE_SIZE must be at least 1, got %d", ErrInvalid, c.PageSize)
	case c.Mode != ModeMarkup && c.Mode != ModeTree && c.Mode != ModeJSON:
		return fmt.Errorf("%w: unknown MODE %q", ErrInvalid, c.Mode)
	case c.Browser && c.Mode != ModeJSON:
		return fmt.Errorf("%w: BROWSER requires MODE=%s", ErrInvalid, ModeJSON)
	case !crawler.IsLanguage(c.Language):
		return fmt.Errorf("%w: unsupported MARKET_LANGUAGE %q", ErrInvalid, c.Language)
	case !dryRun && c.DatabaseURL == "":
		return fmt.Errorf("%w: DB_URL is required", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalid, err)
	}
	return nil
}
