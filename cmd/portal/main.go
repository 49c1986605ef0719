// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/gov-portal/internal/config"
	"github.com/olegiv/gov-portal/internal/handler"
	"github.com/olegiv/gov-portal/internal/kvstore"
	"github.com/olegiv/gov-portal/internal/middleware"
	"github.com/olegiv/gov-portal/internal/portal"
	"github.com/olegiv/gov-portal/internal/session"
	"github.com/olegiv/gov-portal/internal/store"
	"github.com/olegiv/gov-portal/internal/version"
)

// Build-time variables injected via ldflags.
var (
	appVersion   string
	appGitCommit string
	appBuildTime string
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "gov-portal - citizen services portal server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_SESSION_SECRET   Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_STORAGE          Record storage: memory|sqlite|redis (default: memory)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_DB_PATH          SQLite database path (default: ./data/portal.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_REDIS_URL        Redis URL (required for redis storage)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_ID_POLICY        Record ids: compat|monotonic (default: compat)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.New(appVersion, appGitCommit, appBuildTime)
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openStorage returns the record backend and, for sqlite, the migrated
// database that also holds the HTTP sessions.
func openStorage(cfg *config.Config) (kvstore.Storage, *sql.DB, error) {
	kcfg := kvstore.Config{Backend: cfg.Storage, RedisURL: cfg.RedisURL, Prefix: cfg.KeyPrefix}

	if cfg.Storage != config.StorageSQLite {
		kv, err := kvstore.New(kcfg)
		return kv, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	kcfg.DB = db
	kv, err := kvstore.New(kcfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return kv, db, nil
}

func run(info version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	kv, db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			slog.Error("error closing storage", "error", err)
		}
		if db != nil {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}
	}()
	slog.Info("storage ready", "backend", cfg.Storage)

	// Redis already prefixes its keys.
	namespace := cfg.KeyPrefix
	if cfg.Storage == config.StorageRedis {
		namespace = ""
	}

	loc := cfg.Location()
	portals, err := handler.NewPortals(kv, namespace, cfg.MaxSessions, portal.Options{
		AdminDomain:   cfg.AdminDomain,
		IDPolicy:      store.IDPolicy(cfg.IDPolicy),
		ActivityLimit: cfg.ActivityLimit,
		DownloadDelay: cfg.DownloadDelay,
		ResultDelay:   cfg.ResultDelay,
		Clock:         func() time.Time { return time.Now().In(loc) },
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	defer portals.Close()

	sessionManager := session.New(db, cfg.SessionLifetime, cfg.IsDevelopment())
	slog.Info("session manager initialized", "persistent", db != nil)

	throttle := middleware.NewLoginThrottle(cfg.LoginRate, cfg.LoginBurst)
	slog.Info("login throttle initialized", "rate", cfg.LoginRate, "burst", cfg.LoginBurst)

	r := handler.NewRouter(handler.RouterConfig{
		Sessions: sessionManager,
		Health:   handler.NewHealthHandler(kv, info.Version),
		Portal:   handler.NewPortalHandler(portals, sessionManager, throttle, logger),
		CSRF:     middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.ServerAddr(), cfg.IsDevelopment()),
		IsDev:    cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
