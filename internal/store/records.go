// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store holds the portal record collections in memory and mirrors
// them to a key-value backend after every mutation. It also opens and
// migrates the SQLite database used by the sqlite backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/gov-portal/internal/kvstore"
	"github.com/olegiv/gov-portal/internal/model"
)

// Storage keys of the persisted blobs.
const (
	KeyUsers             = "users"
	KeyActivities        = "userActivities"
	KeyFeedbacks         = "feedbacks"
	KeyContentItems      = "contentItems"
	KeyCurrentUser       = "currentUser"
	KeyPreferredLanguage = "preferredLanguage"
)

// IDPolicy selects how new record ids are assigned.
type IDPolicy string

const (
	// IDPolicyCompat assigns count+1, matching records written by the
	// browser portal. Ids can repeat after deletions.
	IDPolicyCompat IDPolicy = "compat"

	// IDPolicyMonotonic assigns max+1 so ids never repeat.
	IDPolicyMonotonic IDPolicy = "monotonic"
)

// IsValid reports whether the policy is known.
func (p IDPolicy) IsValid() bool {
	return p == IDPolicyCompat || p == IDPolicyMonotonic
}

// Store is the in-memory record store mirrored to a kvstore.Storage.
// It is not safe for concurrent use; callers serialize access.
type Store struct {
	kv     kvstore.Storage
	policy IDPolicy
	logger *slog.Logger

	users      []model.User
	activities []model.ActivityEntry
	feedbacks  []model.Feedback
	content    []model.ContentItem
}

// New creates an empty store over kv. Call Load before use.
func New(kv kvstore.Storage, policy IDPolicy, logger *slog.Logger) *Store {
	if !policy.IsValid() {
		policy = IDPolicyCompat
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, policy: policy, logger: logger}
}

// Load deserializes every collection from storage, populates the seed data
// where the portal defines one, and writes the result back.
func (s *Store) Load(ctx context.Context) error {
	var users []model.User
	if _, err := s.read(ctx, KeyUsers, &users); err != nil {
		return err
	}
	var activities []model.ActivityEntry
	if _, err := s.read(ctx, KeyActivities, &activities); err != nil {
		return err
	}
	var feedbacks []model.Feedback
	if _, err := s.read(ctx, KeyFeedbacks, &feedbacks); err != nil {
		return err
	}
	var content []model.ContentItem
	found, err := s.read(ctx, KeyContentItems, &content)
	if err != nil {
		return err
	}

	// Content is seeded only when the key is absent; an empty list is kept.
	if !found || content == nil {
		content = SeedContent()
	}
	if len(users) == 0 {
		users = SeedUsers()
	}
	if len(feedbacks) == 0 {
		feedbacks = SeedFeedback()
	}

	s.users = users
	s.activities = activities
	s.feedbacks = feedbacks
	s.content = content

	return s.Save(ctx)
}

// read decodes the blob under key into dst. It reports false when the key
// is absent or holds JSON null.
func (s *Store) read(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if len(data) == 0 || string(data) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Save serializes all four collections back to storage.
func (s *Store) Save(ctx context.Context) error {
	blobs := []struct {
		key string
		v   any
	}{
		{KeyUsers, nonNil(s.users)},
		{KeyActivities, nonNil(s.activities)},
		{KeyFeedbacks, nonNil(s.feedbacks)},
		{KeyContentItems, nonNil(s.content)},
	}
	for _, b := range blobs {
		if err := s.write(ctx, b.key, b.v); err != nil {
			s.logger.Error("failed to save records", "key", b.key, "error", err)
			return err
		}
	}
	return nil
}

// nonNil makes empty collections serialize as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// nextID assigns an id for a new record in a collection with the given ids.
func (s *Store) nextID(count int, ids func(yield func(int64) bool)) int64 {
	if s.policy == IDPolicyMonotonic {
		var maxID int64
		ids(func(id int64) bool {
			if id > maxID {
				maxID = id
			}
			return true
		})
		return maxID + 1
	}
	return int64(count) + 1
}

// =============================================================================
// USERS
// =============================================================================

// Users returns a copy of the user list in insertion order.
func (s *Store) Users() []model.User {
	return append([]model.User(nil), s.users...)
}

// UserByID returns the user with the given id.
func (s *Store) UserByID(id int64) (model.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// FindUser returns the first user matching the predicate.
func (s *Store) FindUser(match func(model.User) bool) (model.User, bool) {
	for _, u := range s.users {
		if match(u) {
			return u, true
		}
	}
	return model.User{}, false
}

// NextUserID returns the id the next added user will receive.
func (s *Store) NextUserID() int64 {
	return s.nextID(len(s.users), func(yield func(int64) bool) {
		for _, u := range s.users {
			if !yield(u.ID) {
				return
			}
		}
	})
}

// AddUser assigns an id to u, appends it and saves.
func (s *Store) AddUser(ctx context.Context, u model.User) (model.User, error) {
	u.ID = s.NextUserID()
	s.users = append(s.users, u)
	return u, s.Save(ctx)
}

// UpdateUser replaces the stored user with the same id and saves.
func (s *Store) UpdateUser(ctx context.Context, u model.User) error {
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return s.Save(ctx)
		}
	}
	return model.ErrNotFound
}

// DeleteUser removes the user with the given id and saves.
func (s *Store) DeleteUser(ctx context.Context, id int64) (model.User, error) {
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i:i], s.users[i+1:]...)
			return u, s.Save(ctx)
		}
	}
	return model.User{}, model.ErrNotFound
}

// =============================================================================
// ACTIVITY LOG
// =============================================================================

// Activities returns a copy of the activity log in insertion order.
func (s *Store) Activities() []model.ActivityEntry {
	return append([]model.ActivityEntry(nil), s.activities...)
}

// AppendActivity assigns an id to a, appends it and saves.
// The entry is kept in memory even if saving fails.
func (s *Store) AppendActivity(ctx context.Context, a model.ActivityEntry) (model.ActivityEntry, error) {
	a.ID = s.nextID(len(s.activities), func(yield func(int64) bool) {
		for _, e := range s.activities {
			if !yield(e.ID) {
				return
			}
		}
	})
	s.activities = append(s.activities, a)
	return a, s.Save(ctx)
}

// =============================================================================
// FEEDBACK
// =============================================================================

// Feedbacks returns a copy of the feedback list in insertion order.
func (s *Store) Feedbacks() []model.Feedback {
	return append([]model.Feedback(nil), s.feedbacks...)
}

// FeedbackByID returns the feedback entry with the given id.
func (s *Store) FeedbackByID(id int64) (model.Feedback, bool) {
	for _, f := range s.feedbacks {
		if f.ID == id {
			return f, true
		}
	}
	return model.Feedback{}, false
}

// AddFeedback assigns an id to f, appends it and saves.
func (s *Store) AddFeedback(ctx context.Context, f model.Feedback) (model.Feedback, error) {
	f.ID = s.nextID(len(s.feedbacks), func(yield func(int64) bool) {
		for _, e := range s.feedbacks {
			if !yield(e.ID) {
				return
			}
		}
	})
	s.feedbacks = append(s.feedbacks, f)
	return f, s.Save(ctx)
}

// SetFeedbackStatus changes the status of the first entry with the given id
// in place and saves.
func (s *Store) SetFeedbackStatus(ctx context.Context, id int64, status string) (model.Feedback, error) {
	for i := range s.feedbacks {
		if s.feedbacks[i].ID == id {
			s.feedbacks[i].Status = status
			return s.feedbacks[i], s.Save(ctx)
		}
	}
	return model.Feedback{}, model.ErrNotFound
}

// =============================================================================
// CONTENT
// =============================================================================

// ContentItems returns a copy of the content list in insertion order.
func (s *Store) ContentItems() []model.ContentItem {
	return append([]model.ContentItem(nil), s.content...)
}

// ContentByID returns the content item with the given id.
func (s *Store) ContentByID(id int64) (model.ContentItem, bool) {
	for _, c := range s.content {
		if c.ID == id {
			return c, true
		}
	}
	return model.ContentItem{}, false
}

// AddContent assigns an id to c, appends it and saves.
func (s *Store) AddContent(ctx context.Context, c model.ContentItem) (model.ContentItem, error) {
	c.ID = s.nextID(len(s.content), func(yield func(int64) bool) {
		for _, e := range s.content {
			if !yield(e.ID) {
				return
			}
		}
	})
	s.content = append(s.content, c)
	return c, s.Save(ctx)
}

// UpdateContent replaces the stored content item with the same id and saves.
func (s *Store) UpdateContent(ctx context.Context, c model.ContentItem) error {
	for i := range s.content {
		if s.content[i].ID == c.ID {
			s.content[i] = c
			return s.Save(ctx)
		}
	}
	return model.ErrNotFound
}

// DeleteContent removes the content item with the given id and saves.
func (s *Store) DeleteContent(ctx context.Context, id int64) (model.ContentItem, error) {
	for i, c := range s.content {
		if c.ID == id {
			s.content = append(s.content[:i:i], s.content[i+1:]...)
			return c, s.Save(ctx)
		}
	}
	return model.ContentItem{}, model.ErrNotFound
}

// =============================================================================
// SESSION AND PREFERENCES
// =============================================================================

// SaveSession persists the signed-in user under its own key.
func (s *Store) SaveSession(ctx context.Context, u model.User) error {
	return s.write(ctx, KeyCurrentUser, u)
}

// LoadSession returns the persisted signed-in user, or nil if none.
func (s *Store) LoadSession(ctx context.Context) (*model.User, error) {
	var u model.User
	found, err := s.read(ctx, KeyCurrentUser, &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

// ClearSession removes the persisted signed-in user.
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// SavePreference stores a plain string preference.
func (s *Store) SavePreference(ctx context.Context, key, value string) error {
	if err := s.kv.Set(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// LoadPreference returns a stored string preference and whether it was set.
func (s *Store) LoadPreference(ctx context.Context, key string) (string, bool, error) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return string(data), true, nil
}
