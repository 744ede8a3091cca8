// Package config loads runtime settings from .env and the environment.
package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // course zones must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"

	DefaultAddr            = ":8080"
	DefaultDataDir         = "~/.local/share/teetime-scanner"
	DefaultUpstreamTimeout = 15 * time.Second
	DefaultConcurrency     = 4
	DefaultRetryAttempts   = 1
	DefaultRetryDelay      = 500 * time.Millisecond
	DefaultLogLevel        = "info"
	DefaultLocation        = "America/New_York"
)

// Config holds every runtime setting.
type Config struct {
	Addr            string
	DataDir         string
	CourseStore     string
	DBDSN           string
	UpstreamTimeout time.Duration
	ScanConcurrency int
	MaxScanDays     int
	RetryAttempts   int
	RetryDelay      time.Duration
	CacheTTL        time.Duration
	CourseTimeout   time.Duration // 0 scales with the number of days scanned
	LogLevel        string
	Location        string
	NotifyDryRun    bool
}

// Load reads .env if present, then the environment, and validates the result.
func Load() (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load(".env")

	cfg := Config{
		Addr:            envOrDefault("ADDR", DefaultAddr),
		DataDir:         envOrDefault("DATA_DIR", DefaultDataDir),
		CourseStore:     strings.ToLower(envOrDefault("COURSE_STORE", StoreFile)),
		DBDSN:           envOrDefault("DB_DSN", ""),
		UpstreamTimeout: durationEnvOrDefault("UPSTREAM_TIMEOUT", DefaultUpstreamTimeout),
		ScanConcurrency: intEnvOrDefault("SCAN_CONCURRENCY", DefaultConcurrency),
		MaxScanDays:     intEnvOrDefault("MAX_SCAN_DAYS", teetime.DefaultMaxScanDays),
		RetryAttempts:   intEnvOrDefault("RETRY_ATTEMPTS", DefaultRetryAttempts),
		RetryDelay:      durationEnvOrDefault("RETRY_DELAY", DefaultRetryDelay),
		CacheTTL:        durationEnvOrDefault("CACHE_TTL", 0),
		CourseTimeout:   durationEnvOrDefault("COURSE_TIMEOUT", 0),
		LogLevel:        envOrDefault("LOG_LEVEL", DefaultLogLevel),
		Location:        envOrDefault("COURSE_TIMEZONE", DefaultLocation),
		NotifyDryRun:    boolEnvOrDefault("NOTIFY_DRY_RUN", false),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that have no safe fallback.
func (c Config) Validate() error {
	switch c.CourseStore {
	case StoreFile:
	case StorePostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required when COURSE_STORE=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("COURSE_STORE must be %q or %q, got %q", StoreFile, StorePostgres, c.CourseStore)
	}
	if _, err := time.LoadLocation(c.Location); err != nil {
		return fmt.Errorf("COURSE_TIMEZONE %q: %w", c.Location, err)
	}
	return nil
}

// TimeLocation returns the zone upstream timestamps are rendered in.
func (c Config) TimeLocation() *time.Location {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.Local
	}
	return loc
}
