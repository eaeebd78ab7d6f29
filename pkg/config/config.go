// Package config loads process configuration from environment variables and
// the static boss roster from a YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Storage backend selection.
type StorageBackend string

const (
	StorageJSON   StorageBackend = "json"
	StorageSQLite StorageBackend = "sqlite"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int

	// Timezone is the single fixed zone all timestamps are interpreted in.
	Timezone string
	Location *time.Location

	Backend     StorageBackend
	DataFile    string
	HistoryFile string
	SQLitePath  string
	RosterFile  string

	AdminCredential string
	WebhookURL      string

	RefreshInterval time.Duration
	MetricsEnabled  bool
}

// Load reads environment variables, applies defaults, and validates the
// result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:     getEnv("BOSSWATCH_ENV", "development"),
		HTTPBind:        getEnv("BOSSWATCH_HTTP_BIND", "0.0.0.0"),
		HTTPPort:        getEnvInt("BOSSWATCH_HTTP_PORT", 8080),
		Timezone:        getEnv("BOSSWATCH_TIMEZONE", "Asia/Manila"),
		Backend:         StorageBackend(getEnv("BOSSWATCH_STORAGE_BACKEND", string(StorageJSON))),
		DataFile:        getEnv("BOSSWATCH_DATA_FILE", "boss_timers.json"),
		HistoryFile:     getEnv("BOSSWATCH_HISTORY_FILE", "boss_history.json"),
		SQLitePath:      getEnv("BOSSWATCH_SQLITE_PATH", "bosswatch.db"),
		RosterFile:      getEnv("BOSSWATCH_ROSTER_FILE", "bosses.yaml"),
		AdminCredential: getEnv("BOSSWATCH_ADMIN_CREDENTIAL", ""),
		WebhookURL:      getEnv("BOSSWATCH_WEBHOOK_URL", ""),
		RefreshInterval: time.Duration(getEnvInt("BOSSWATCH_REFRESH_MS", 1000)) * time.Millisecond,
		MetricsEnabled:  getEnvBool("BOSSWATCH_METRICS_ENABLED", true),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	switch cfg.Backend {
	case StorageJSON, StorageSQLite:
	default:
		return nil, fmt.Errorf("invalid storage backend %q", cfg.Backend)
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid http port %d", cfg.HTTPPort)
	}
	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
