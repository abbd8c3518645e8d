package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the booking service.
type Config struct {
	HTTPPort         int
	SQLiteDSN        string
	BusinessTimezone *time.Location
	OpeningHour      int
	ClosingHour      int
	AnalyticsTTL     time.Duration
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields and reports every
// missing or invalid entry in a single error.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:         8080,
		SQLiteDSN:        "file:club-scheduler.db?_foreign_keys=on",
		BusinessTimezone: time.UTC,
		OpeningHour:      8,
		ClosingHour:      19,
		AnalyticsTTL:     30 * time.Second,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SCHEDULER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SCHEDULER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SCHEDULER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if tz := strings.TrimSpace(os.Getenv("SCHEDULER_BUSINESS_TIMEZONE")); tz != "" {
		location, err := time.LoadLocation(tz)
		if err != nil {
			invalid = append(invalid, "SCHEDULER_BUSINESS_TIMEZONE")
		} else {
			cfg.BusinessTimezone = location
		}
	}

	if openValue := strings.TrimSpace(os.Getenv("SCHEDULER_OPENING_HOUR")); openValue != "" {
		hour, err := strconv.Atoi(openValue)
		if err != nil || hour < 0 || hour > 23 {
			invalid = append(invalid, "SCHEDULER_OPENING_HOUR")
		} else {
			cfg.OpeningHour = hour
		}
	}

	if closeValue := strings.TrimSpace(os.Getenv("SCHEDULER_CLOSING_HOUR")); closeValue != "" {
		hour, err := strconv.Atoi(closeValue)
		if err != nil || hour < 0 || hour > 23 {
			invalid = append(invalid, "SCHEDULER_CLOSING_HOUR")
		} else {
			cfg.ClosingHour = hour
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("SCHEDULER_ANALYTICS_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "SCHEDULER_ANALYTICS_TTL")
		} else {
			cfg.AnalyticsTTL = ttl
		}
	}

	if cfg.ClosingHour < cfg.OpeningHour {
		invalid = append(invalid, "SCHEDULER_CLOSING_HOUR")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
