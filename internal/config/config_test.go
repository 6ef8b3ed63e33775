package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/feed")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want localhost:6379", cfg.RedisAddr)
	}
	if cfg.Feed.PageSize != 100 {
		t.Errorf("Feed.PageSize = %d, want 100", cfg.Feed.PageSize)
	}
	// 720h is the 30-day / 2592000s default cache lifetime.
	if cfg.Feed.CacheMaxAge != 720*time.Hour {
		t.Errorf("Feed.CacheMaxAge = %s, want 720h", cfg.Feed.CacheMaxAge)
	}
	if cfg.Feed.SyncEvery != 30*time.Second {
		t.Errorf("Feed.SyncEvery = %s, want 30s", cfg.Feed.SyncEvery)
	}
	if cfg.Feed.Name != "events" {
		t.Errorf("Feed.Name = %q, want events", cfg.Feed.Name)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/feed")
	t.Setenv("PORT", "9000")
	t.Setenv("FEED_NAME", "orders")
	t.Setenv("FEED_PAGE_SIZE", "25")
	t.Setenv("FEED_CACHE_MAX_AGE", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.Feed.Name != "orders" {
		t.Errorf("Feed.Name = %q, want orders", cfg.Feed.Name)
	}
	if cfg.Feed.PageSize != 25 {
		t.Errorf("Feed.PageSize = %d, want 25", cfg.Feed.PageSize)
	}
	if cfg.Feed.CacheMaxAge != time.Hour {
		t.Errorf("Feed.CacheMaxAge = %s, want 1h", cfg.Feed.CacheMaxAge)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("Load should fail without DATABASE_URL")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero page size", func(c *Config) { c.Feed.PageSize = 0 }, true},
		{"negative page size", func(c *Config) { c.Feed.PageSize = -5 }, true},
		{"sub-second max age", func(c *Config) { c.Feed.CacheMaxAge = time.Millisecond }, true},
		{"zero sync interval", func(c *Config) { c.Feed.SyncEvery = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Feed: FeedConfig{
					PageSize:    100,
					CacheMaxAge: 720 * time.Hour,
					SyncEvery:   30 * time.Second,
				},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
