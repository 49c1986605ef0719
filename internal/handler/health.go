// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/gov-portal/internal/kvstore"
)

// healthProbeTimeout bounds the storage probe of a health check.
const healthProbeTimeout = 2 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	kv        kvstore.Storage
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(kv kvstore.Storage, version string) *HealthHandler {
	return &HealthHandler{
		kv:        kv,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthStatus is the health response.
type HealthStatus struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`
}

// Health handles GET /health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
	defer cancel()

	status := HealthStatus{
		Status:  "healthy",
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Version: h.version,
	}
	code := http.StatusOK

	if err := kvstore.Probe(ctx, h.kv); err != nil {
		slog.Error("storage health check failed", "error", err)
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, status)
}
