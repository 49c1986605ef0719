// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // PORTAL_TIMEZONE must load on hosts without zoneinfo

	"github.com/caarlos0/env/v11"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Record id policies.
const (
	IDPolicyCompat    = "compat"
	IDPolicyMonotonic = "monotonic"
)

// knownWeakSecrets contains example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Storage   string `env:"PORTAL_STORAGE" envDefault:"memory"`
	DBPath    string `env:"PORTAL_DB_PATH" envDefault:"./data/portal.db"`
	RedisURL  string `env:"PORTAL_REDIS_URL"`
	KeyPrefix string `env:"PORTAL_KEY_PREFIX" envDefault:"portal:"`

	SessionSecret   string        `env:"PORTAL_SESSION_SECRET,required"`
	SessionLifetime time.Duration `env:"PORTAL_SESSION_LIFETIME" envDefault:"24h"`
	MaxSessions     int           `env:"PORTAL_MAX_SESSIONS" envDefault:"1000"`

	ServerHost string `env:"PORTAL_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PORTAL_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"PORTAL_ENV" envDefault:"development"`
	LogLevel   string `env:"PORTAL_LOG_LEVEL" envDefault:"info"`
	Timezone   string `env:"PORTAL_TIMEZONE" envDefault:"Local"`

	// Portal behavior
	AdminDomain   string        `env:"PORTAL_ADMIN_DOMAIN" envDefault:"@gov.in"`
	IDPolicy      string        `env:"PORTAL_ID_POLICY" envDefault:"compat"`
	ActivityLimit int           `env:"PORTAL_ACTIVITY_LIMIT" envDefault:"20"`
	DownloadDelay time.Duration `env:"PORTAL_DOWNLOAD_DELAY" envDefault:"1500ms"`
	ResultDelay   time.Duration `env:"PORTAL_RESULT_DELAY" envDefault:"1000ms"`

	// Login throttling per client IP
	LoginRate  float64 `env:"PORTAL_LOGIN_RATE" envDefault:"0.5"`
	LoginBurst int     `env:"PORTAL_LOGIN_BURST" envDefault:"5"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Location returns the configured time zone. Load has already validated it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.Storage {
	case StorageMemory, StorageSQLite:
	case StorageRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("PORTAL_REDIS_URL is required when PORTAL_STORAGE is %q", StorageRedis)
		}
	default:
		return nil, fmt.Errorf("PORTAL_STORAGE must be one of memory, sqlite, redis; got %q", cfg.Storage)
	}

	if cfg.IDPolicy != IDPolicyCompat && cfg.IDPolicy != IDPolicyMonotonic {
		return nil, fmt.Errorf("PORTAL_ID_POLICY must be %q or %q; got %q", IDPolicyCompat, IDPolicyMonotonic, cfg.IDPolicy)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("PORTAL_TIMEZONE: %w", err)
	}

	if cfg.MaxSessions <= 0 {
		return nil, fmt.Errorf("PORTAL_MAX_SESSIONS must be positive, got %d", cfg.MaxSessions)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PORTAL_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("PORTAL_SESSION_SECRET is a known default value and must not be used")
		}
	}
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PORTAL_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
