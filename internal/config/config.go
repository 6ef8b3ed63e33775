// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	Feed FeedConfig `envPrefix:"FEED_"`
}

// FeedConfig holds the feed identity and serving policy.
type FeedConfig struct {
	Name            string        `env:"NAME" envDefault:"events"`
	URL             string        `env:"URL" envDefault:"/"`
	ProviderName    string        `env:"PROVIDER_NAME" envDefault:"atomium"`
	ProviderVersion string        `env:"PROVIDER_VERSION" envDefault:"1.0.0"`
	PageSize        int           `env:"PAGE_SIZE" envDefault:"100"`
	CacheMaxAge     time.Duration `env:"CACHE_MAX_AGE" envDefault:"720h"`
	SyncEvery       time.Duration `env:"SYNC_EVERY" envDefault:"30s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the configuration is serveable.
func (c *Config) Validate() error {
	if c.Feed.PageSize <= 0 {
		return fmt.Errorf("FEED_PAGE_SIZE must be positive, got %d", c.Feed.PageSize)
	}
	if c.Feed.CacheMaxAge < time.Second {
		return fmt.Errorf("FEED_CACHE_MAX_AGE must be at least one second, got %s", c.Feed.CacheMaxAge)
	}
	if c.Feed.SyncEvery <= 0 {
		return fmt.Errorf("FEED_SYNC_EVERY must be positive, got %s", c.Feed.SyncEvery)
	}
	return nil
}
