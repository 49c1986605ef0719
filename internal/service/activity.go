// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the portal business logic: authentication,
// the activity log, feedback handling, content management, the scheme
// catalog and dashboard statistics.
package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/store"
)

// DefaultActivityLimit is the number of entries shown by the activity log.
const DefaultActivityLimit = 20

// Clock returns the current time in the portal's time zone.
type Clock func() time.Time

// ActivityFilter narrows an activity listing.
// The date range applies only when both From and To are set.
type ActivityFilter struct {
	UserID *int64
	From   string // YYYY-MM-DD, inclusive
	To     string // YYYY-MM-DD, inclusive
	Limit  int    // 0 uses the service limit, negative disables the cap
}

// ActivityService records and lists user activity entries.
type ActivityService struct {
	store  *store.Store
	now    Clock
	limit  int
	logger *slog.Logger
}

// NewActivityService creates a new ActivityService.
func NewActivityService(st *store.Store, now Clock, limit int, logger *slog.Logger) *ActivityService {
	if now == nil {
		now = time.Now
	}
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return &ActivityService{store: st, now: now, limit: limit, logger: logger}
}

// Now returns the current time from the service clock.
func (s *ActivityService) Now() time.Time {
	return s.now()
}

// Today returns the current calendar date.
func (s *ActivityService) Today() string {
	return s.now().Format(model.DateLayout)
}

// Record appends an activity entry. Persist failures are logged and the
// entry is still returned.
func (s *ActivityService) Record(ctx context.Context, userID int64, action, details string) model.ActivityEntry {
	entry, err := s.store.AppendActivity(ctx, model.ActivityEntry{
		UserID:    userID,
		Action:    action,
		Timestamp: s.now().Format(model.TimestampLayout),
		Details:   details,
	})
	if err != nil {
		s.logger.Error("failed to persist activity", "action", action, "user_id", userID, "error", err)
	}
	return entry
}

// List returns the entries matching the filter, newest first.
func (s *ActivityService) List(filter ActivityFilter) []model.ActivityEntry {
	entries := s.store.Activities()

	if filter.UserID != nil {
		entries = slices.DeleteFunc(entries, func(a model.ActivityEntry) bool {
			return a.UserID != *filter.UserID
		})
	}
	if filter.From != "" && filter.To != "" {
		entries = slices.DeleteFunc(entries, func(a model.ActivityEntry) bool {
			d := a.Date()
			return d < filter.From || d > filter.To
		})
	}

	// Timestamps share one fixed-width layout, so string order is time order.
	slices.SortStableFunc(entries, func(a, b model.ActivityEntry) int {
		switch {
		case a.Timestamp > b.Timestamp:
			return -1
		case a.Timestamp < b.Timestamp:
			return 1
		}
		return 0
	})

	limit := filter.Limit
	if limit == 0 {
		limit = s.limit
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// CountByAction returns how many entries carry the action.
func (s *ActivityService) CountByAction(action string) int {
	n := 0
	for _, a := range s.store.Activities() {
		if a.Action == action {
			n++
		}
	}
	return n
}

// ForUser returns the user's entries with the given action in insertion order.
func (s *ActivityService) ForUser(userID int64, action string) []model.ActivityEntry {
	var out []model.ActivityEntry
	for _, a := range s.store.Activities() {
		if a.UserID == userID && a.Action == action {
			out = append(out, a)
		}
	}
	return out
}

// CountForUser returns how many of the user's entries carry the action.
func (s *ActivityService) CountForUser(userID int64, action string) int {
	return len(s.ForUser(userID, action))
}
