// Package config loads runtime settings from the environment, an optional
// .env file and an optional TOML shift calendar.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/reconcile"
)

type Config struct {
	DBPath       string
	CalendarPath string
	// PostgresURL selects the hosted activity backend when set.
	PostgresURL string

	UTCOffsetMin  int
	OpenFreshness time.Duration
	OpenCap       time.Duration
	LateGrace     time.Duration
	CacheTTL      time.Duration

	LogUseCases bool
}

// DefaultConfig returns the settings used when nothing is overridden.
// DBPath is left empty; Load fills it from the home directory.
func DefaultConfig() Config {
	return Config{
		UTCOffsetMin:  240,
		OpenFreshness: 30 * time.Minute,
		OpenCap:       15 * time.Minute,
		LateGrace:     15 * time.Minute,
		CacheTTL:      time.Minute,
	}
}

// Load reads a .env file from the working directory when present, then the
// SHIFTCLOCK_* environment. Invalid values fall back to the defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("SHIFTCLOCK_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = filepath.Join(home, ".shiftclock", "shiftclock.db")
	}
	cfg.CalendarPath = os.Getenv("SHIFTCLOCK_CALENDAR")
	cfg.PostgresURL = os.Getenv("SHIFTCLOCK_PG_URL")

	if v := os.Getenv("SHIFTCLOCK_UTC_OFFSET_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= -12*60 && n <= 14*60 {
			cfg.UTCOffsetMin = n
		}
	}
	cfg.OpenFreshness = getDurationEnv("SHIFTCLOCK_OPEN_FRESHNESS", cfg.OpenFreshness)
	cfg.OpenCap = getDurationEnv("SHIFTCLOCK_OPEN_CAP", cfg.OpenCap)
	cfg.LateGrace = getDurationEnv("SHIFTCLOCK_LATE_GRACE", cfg.LateGrace)
	cfg.CacheTTL = getDurationEnv("SHIFTCLOCK_CACHE_TTL", cfg.CacheTTL)

	if v := os.Getenv("SHIFTCLOCK_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	return cfg, nil
}

// Location is the fixed zone civil dates are derived in.
func (c Config) Location() *time.Location {
	return calendar.FixedZone(c.UTCOffsetMin)
}

func (c Config) ReconcilePolicy() reconcile.Policy {
	return reconcile.Policy{OpenFreshness: c.OpenFreshness, OpenCap: c.OpenCap}
}

// getDurationEnv accepts non-negative Go durations such as "30m".
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return fallback
}
