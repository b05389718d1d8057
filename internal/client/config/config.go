package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/wallabag/internal/common"
)

// Config holds runtime settings for the wallabag CLI.
type Config struct {
	ServerURL   string
	AccessToken string

	// PageSize is the perPage value of listing requests; PageWorkers bounds
	// how many listing pages are fetched at once.
	PageSize          int
	PageWorkers       int
	RequestsPerSecond float64
	RequestTimeout    time.Duration
	ProxyURL          string

	// CacheDSN is a SQLite file path or a postgres:// URL.
	CacheDSN string

	LogLevel            string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "https://app.wallabag.it"
	c.AccessToken = ""
	c.PageSize = 30
	c.PageWorkers = 4
	c.RequestsPerSecond = 10
	c.RequestTimeout = 30 * time.Second
	c.ProxyURL = ""
	c.CacheDSN = "wallabag.db"
	c.LogLevel = "info"
	c.OnlineCheckInterval = 10 * time.Second
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.ServerURL == "":
		return fmt.Errorf("%w: server url is empty", common.ErrInvalidConfig)
	case c.PageSize < 1:
		return fmt.Errorf("%w: page size %d < 1", common.ErrInvalidConfig, c.PageSize)
	case c.PageWorkers < 1:
		return fmt.Errorf("%w: page workers %d < 1", common.ErrInvalidConfig, c.PageWorkers)
	case c.RequestsPerSecond < 0:
		return fmt.Errorf("%w: requests per second %v < 0", common.ErrInvalidConfig, c.RequestsPerSecond)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request timeout must be positive", common.ErrInvalidConfig)
	case c.CacheDSN == "":
		return fmt.Errorf("%w: cache dsn is empty", common.ErrInvalidConfig)
	case c.OnlineCheckInterval <= 0:
		return fmt.Errorf("%w: online check interval must be positive", common.ErrInvalidConfig)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
