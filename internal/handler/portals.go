// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/olegiv/gov-portal/internal/i18n"
	"github.com/olegiv/gov-portal/internal/kvstore"
	"github.com/olegiv/gov-portal/internal/portal"
)

// livePortal is a portal instance bound to one browser session.
type livePortal struct {
	app       *portal.App
	presenter *bufferedPresenter
}

// Portals keeps the live portal of every browser session. Each portal
// mirrors its records under its own key namespace, so an evicted portal is
// rebuilt from storage like a page reload.
type Portals struct {
	kv     kvstore.Storage
	prefix string
	opts   portal.Options
	logger *slog.Logger

	mu    sync.Mutex
	cache *lru.Cache[string, *livePortal]
}

// NewPortals creates a registry holding at most size live portals. Keys of
// portal id are stored under prefix + id + ":".
func NewPortals(kv kvstore.Storage, prefix string, size int, opts portal.Options) (*Portals, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := lru.NewWithEvict(size, func(id string, p *livePortal) {
		p.app.Close()
		logger.Debug("portal evicted", "portal_id", id)
	})
	if err != nil {
		return nil, fmt.Errorf("creating portal cache: %w", err)
	}

	return &Portals{
		kv:     kv,
		prefix: prefix,
		opts:   opts,
		logger: logger,
		cache:  cache,
	}, nil
}

// Namespace returns the key prefix of a portal id.
func (ps *Portals) Namespace(id string) string {
	return ps.prefix + id + ":"
}

// get returns the live portal of id, loading it from storage when it is not
// cached. lang is the browser's language, used until the user picks one.
func (ps *Portals) get(ctx context.Context, id string, lang i18n.Language) (*livePortal, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if p, ok := ps.cache.Get(id); ok {
		return p, nil
	}

	opts := ps.opts
	opts.Language = lang
	opts.Logger = ps.logger.With("portal_id", id)

	app, err := portal.New(ctx, kvstore.Namespace(ps.kv, ps.Namespace(id)), opts)
	if err != nil {
		return nil, fmt.Errorf("opening portal %s: %w", id, err)
	}
	p := &livePortal{app: app, presenter: &bufferedPresenter{}}
	app.Attach(p.presenter)

	ps.cache.Add(id, p)
	ps.logger.Debug("portal opened", "portal_id", id)
	return p, nil
}

// Len returns the number of live portals.
func (ps *Portals) Len() int {
	return ps.cache.Len()
}

// Close closes every live portal.
func (ps *Portals) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.cache.Purge()
}
