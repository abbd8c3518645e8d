package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"SCHEDULER_HTTP_PORT",
			"SCHEDULER_SQLITE_DSN",
			"SCHEDULER_BUSINESS_TIMEZONE",
			"SCHEDULER_OPENING_HOUR",
			"SCHEDULER_CLOSING_HOUR",
			"SCHEDULER_ANALYTICS_TTL",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:club-scheduler.db?_foreign_keys=on" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.BusinessTimezone != time.UTC {
			t.Fatalf("expected default timezone UTC, got %v", cfg.BusinessTimezone)
		}
		if cfg.OpeningHour != 8 || cfg.ClosingHour != 19 {
			t.Fatalf("unexpected default operating hours: %d-%d", cfg.OpeningHour, cfg.ClosingHour)
		}
	})

	t.Run("parses numeric, duration, and timezone fields", func(t *testing.T) {
		t.Setenv("SCHEDULER_HTTP_PORT", "9090")
		t.Setenv("SCHEDULER_SQLITE_DSN", "file:/tmp/club.db")
		t.Setenv("SCHEDULER_BUSINESS_TIMEZONE", "Asia/Tokyo")
		t.Setenv("SCHEDULER_OPENING_HOUR", "7")
		t.Setenv("SCHEDULER_CLOSING_HOUR", "22")
		t.Setenv("SCHEDULER_ANALYTICS_TTL", "1m")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:/tmp/club.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.BusinessTimezone.String() != "Asia/Tokyo" {
			t.Fatalf("unexpected timezone: %v", cfg.BusinessTimezone)
		}
		if cfg.OpeningHour != 7 || cfg.ClosingHour != 22 {
			t.Fatalf("unexpected operating hours: %d-%d", cfg.OpeningHour, cfg.ClosingHour)
		}
		if cfg.AnalyticsTTL != time.Minute {
			t.Fatalf("expected analytics TTL 1m, got %s", cfg.AnalyticsTTL)
		}
	})

	t.Run("reports every invalid value", func(t *testing.T) {
		t.Setenv("SCHEDULER_HTTP_PORT", "not-a-port")
		t.Setenv("SCHEDULER_BUSINESS_TIMEZONE", "Mars/Olympus")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error for invalid values")
		}
		for _, key := range []string{"SCHEDULER_HTTP_PORT", "SCHEDULER_BUSINESS_TIMEZONE"} {
			if !strings.Contains(err.Error(), key) {
				t.Fatalf("expected error to mention %s, got %q", key, err.Error())
			}
		}
	})

	t.Run("rejects closing hour before opening hour", func(t *testing.T) {
		t.Setenv("SCHEDULER_OPENING_HOUR", "18")
		t.Setenv("SCHEDULER_CLOSING_HOUR", "9")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error when closing hour precedes opening hour")
		}
	})
}
