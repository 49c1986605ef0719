// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PORTAL_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Storage != StorageMemory {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageMemory)
	}
	if cfg.DBPath != "./data/portal.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/portal.db")
	}
	if cfg.KeyPrefix != "portal:" {
		t.Errorf("KeyPrefix = %q", cfg.KeyPrefix)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false")
	}
	if cfg.AdminDomain != "@gov.in" || cfg.IDPolicy != IDPolicyCompat || cfg.ActivityLimit != 20 {
		t.Errorf("portal defaults = %q %q %d", cfg.AdminDomain, cfg.IDPolicy, cfg.ActivityLimit)
	}
	if cfg.DownloadDelay != 1500*time.Millisecond || cfg.ResultDelay != time.Second {
		t.Errorf("delays = %v, %v", cfg.DownloadDelay, cfg.ResultDelay)
	}
	if cfg.SessionLifetime != 24*time.Hour || cfg.MaxSessions != 1000 {
		t.Errorf("sessions = %v, %d", cfg.SessionLifetime, cfg.MaxSessions)
	}
	if cfg.LoginRate != 0.5 || cfg.LoginBurst != 5 {
		t.Errorf("login throttle = %v/%d", cfg.LoginRate, cfg.LoginBurst)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PORTAL_SESSION_SECRET", testSecret)
	setEnv(t, "PORTAL_STORAGE", "sqlite")
	setEnv(t, "PORTAL_DB_PATH", "/custom/path.db")
	setEnv(t, "PORTAL_SERVER_PORT", "3000")
	setEnv(t, "PORTAL_ENV", "production")
	setEnv(t, "PORTAL_ID_POLICY", "monotonic")
	setEnv(t, "PORTAL_TIMEZONE", "Asia/Kolkata")
	setEnv(t, "PORTAL_DOWNLOAD_DELAY", "10ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Storage != StorageSQLite || cfg.DBPath != "/custom/path.db" {
		t.Errorf("storage = %q %q", cfg.Storage, cfg.DBPath)
	}
	if cfg.ServerPort != 3000 || cfg.IsDevelopment() {
		t.Errorf("server = %d, dev = %v", cfg.ServerPort, cfg.IsDevelopment())
	}
	if cfg.IDPolicy != IDPolicyMonotonic {
		t.Errorf("IDPolicy = %q", cfg.IDPolicy)
	}
	if cfg.Location().String() != "Asia/Kolkata" {
		t.Errorf("Location() = %v", cfg.Location())
	}
	if cfg.DownloadDelay != 10*time.Millisecond {
		t.Errorf("DownloadDelay = %v", cfg.DownloadDelay)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing secret", map[string]string{}, "PORTAL_SESSION_SECRET"},
		{"short secret", map[string]string{"PORTAL_SESSION_SECRET": "short"}, "at least 32 bytes"},
		{"weak secret", map[string]string{"PORTAL_SESSION_SECRET": "change-me-to-32-byte-secret-key!"}, "known default"},
		{"unknown storage", map[string]string{"PORTAL_STORAGE": "etcd"}, "PORTAL_STORAGE"},
		{"redis without url", map[string]string{"PORTAL_STORAGE": "redis"}, "PORTAL_REDIS_URL"},
		{"bad id policy", map[string]string{"PORTAL_ID_POLICY": "random"}, "PORTAL_ID_POLICY"},
		{"bad timezone", map[string]string{"PORTAL_TIMEZONE": "Mars/Olympus"}, "PORTAL_TIMEZONE"},
		{"no sessions", map[string]string{"PORTAL_MAX_SESSIONS": "0"}, "PORTAL_MAX_SESSIONS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.name != "missing secret" {
				setEnv(t, "PORTAL_SESSION_SECRET", testSecret)
			}
			for k, v := range tt.env {
				setEnv(t, k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() succeeded")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"abcABC123", true},
		{"abc-123", true},
	}
	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
