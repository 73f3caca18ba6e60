package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/lenddesk/loanledger/internal/infrastructure/config"
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

	if cfg.LoanCacheTTL != 60*time.Second {
		t.Fatalf("expected default loan cache TTL 60s, got %s", cfg.LoanCacheTTL)
	}

	if len(cfg.ReminderHorizons) != 2 || cfg.ReminderHorizons[0] != 3 || cfg.ReminderHorizons[1] != 1 {
		t.Fatalf("expected default reminder horizons [3 1], got %v", cfg.ReminderHorizons)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("REMINDER_HORIZONS", "7,3,1")
	t.Setenv("REMINDER_CRON_SPEC", "30 6 * * *")

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

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if len(cfg.ReminderHorizons) != 3 {
		t.Fatalf("expected 3 reminder horizons, got %v", cfg.ReminderHorizons)
	}

	if cfg.ReminderCronSpec != "30 6 * * *" {
		t.Fatalf("expected cron spec override, got %s", cfg.ReminderCronSpec)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	original := os.Getenv("HTTP_READ_TIMEOUT")
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")
	t.Cleanup(func() {
		t.Setenv("HTTP_READ_TIMEOUT", original)
	})

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
