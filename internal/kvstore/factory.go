package kvstore

import (
	"context"
	"database/sql"
	"fmt"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds configuration for storage creation.
type Config struct {
	// Backend is the storage type: "memory", "sqlite" or "redis"
	Backend string

	// DB is the migrated SQLite database (only for sqlite backend)
	DB *sql.DB

	// RedisURL is the Redis connection URL (only for redis backend)
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis (only for redis backend)
	Prefix string
}

// New creates a storage backend based on the provided configuration.
func New(cfg Config) (Storage, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		if cfg.DB == nil {
			return nil, fmt.Errorf("sqlite backend requires a database")
		}
		return NewSQLiteStore(cfg.DB), nil
	case BackendRedis:
		return NewRedisStoreFromURL(cfg.RedisURL, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Pinger is implemented by backends that can probe their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe checks the backend connection if it supports pinging.
func Probe(ctx context.Context, s Storage) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
