// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/olegiv/gov-portal/internal/i18n"
	"github.com/olegiv/gov-portal/internal/middleware"
	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/portal"
	"github.com/olegiv/gov-portal/internal/session"
)

// maxCommandBytes bounds the body of a command request.
const maxCommandBytes = 64 << 10

// PortalHandler exposes the portal of the caller's browser session.
type PortalHandler struct {
	portals  *Portals
	sm       *scs.SessionManager
	throttle *middleware.LoginThrottle
	logger   *slog.Logger
}

// NewPortalHandler creates a new portal handler.
func NewPortalHandler(portals *Portals, sm *scs.SessionManager, throttle *middleware.LoginThrottle, logger *slog.Logger) *PortalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PortalHandler{
		portals:  portals,
		sm:       sm,
		throttle: throttle,
		logger:   logger,
	}
}

// current returns the caller's portal, assigning a portal id to new sessions.
func (h *PortalHandler) current(r *http.Request) (*livePortal, error) {
	ctx := r.Context()
	id := h.sm.GetString(ctx, session.PortalKey)
	if id == "" {
		id = uuid.NewString()
		h.sm.Put(ctx, session.PortalKey, id)
	}
	return h.portals.get(ctx, id, i18n.MatchAcceptLanguage(r.Header.Get("Accept-Language")))
}

// View handles GET /api/view.
func (h *PortalHandler) View(w http.ResponseWriter, r *http.Request) {
	p, err := h.current(r)
	if err != nil {
		h.logger.Error("failed to open portal", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Portal unavailable")
		return
	}
	writeJSON(w, http.StatusOK, p.presenter.take())
}

// Commands handles GET /api/commands.
func (h *PortalHandler) Commands(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"commands": portal.Commands()})
}

// Command handles POST /api/commands.
func (h *PortalHandler) Command(w http.ResponseWriter, r *http.Request) {
	var cmd portal.Command
	dec := json.NewDecoder(io.LimitReader(r.Body, maxCommandBytes))
	if err := dec.Decode(&cmd); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if cmd.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "Command name is required")
		return
	}

	cmd.Client = portal.Client{
		UserAgent: r.UserAgent(),
		IP:        middleware.ClientIP(r),
	}

	if portal.IsLoginCommand(cmd.Name) && h.throttle != nil && !h.throttle.Allow(cmd.Client.IP) {
		writeJSONError(w, http.StatusTooManyRequests, "Too many attempts. Please wait a moment and try again.")
		return
	}

	p, err := h.current(r)
	if err != nil {
		h.logger.Error("failed to open portal", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Portal unavailable")
		return
	}

	if err := p.presenter.dispatch(r.Context(), cmd); err != nil {
		if errors.Is(err, model.ErrUnknownCommand) || errors.Is(err, model.ErrInvalidArguments) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("command failed", "command", cmd.Name, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Command failed")
		return
	}

	writeJSON(w, http.StatusOK, p.presenter.take())
}
