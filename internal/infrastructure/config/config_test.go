package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if !cfg.DefaultSplitPercentage.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected default split percentage 20, got %s", cfg.DefaultSplitPercentage)
	}

	if cfg.AccountCacheTTL != 10*time.Minute {
		t.Fatalf("expected account cache TTL 10m, got %s", cfg.AccountCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("PROVIDER_BASE_URL", "https://provider.test")
	t.Setenv("PROVIDER_API_KEY", "key")
	t.Setenv("PROVIDER_MAX_RETRIES", "5")
	t.Setenv("DEFAULT_SPLIT_PERCENTAGE", "12.5")
	t.Setenv("RUN_MIGRATIONS", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.ProviderBaseURL != "https://provider.test" || cfg.ProviderAPIKey != "key" || cfg.ProviderMaxRetries != 5 {
		t.Fatalf("expected provider overrides, got %+v", cfg)
	}

	if !cfg.DefaultSplitPercentage.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("expected split percentage 12.5, got %s", cfg.DefaultSplitPercentage)
	}

	if !cfg.RunMigrations {
		t.Fatalf("expected RUN_MIGRATIONS to be set")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadInvalidSplitPercentage(t *testing.T) {
	for _, v := range []string{"abc", "0", "-1", "100.01"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("DEFAULT_SPLIT_PERCENTAGE", v)

			if _, err := config.Load(); err == nil {
				t.Fatalf("expected error for split percentage %q", v)
			}
		})
	}
}
