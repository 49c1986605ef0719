// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mileusna/useragent"
	"golang.org/x/text/cases"

	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/store"
)

// DefaultAdminDomain is the email suffix that triggers admin provisioning.
const DefaultAdminDomain = "@gov.in"

// SignupInput holds the fields of the registration form.
type SignupInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	AgreeTerms      bool
}

// AuthService authenticates users against the stored user list and owns
// the current session of one portal.
type AuthService struct {
	store       *store.Store
	activity    *ActivityService
	adminDomain string
	logger      *slog.Logger

	current *model.User
}

// NewAuthService creates a new AuthService.
func NewAuthService(st *store.Store, activity *ActivityService, adminDomain string, logger *slog.Logger) *AuthService {
	if adminDomain == "" {
		adminDomain = DefaultAdminDomain
	}
	return &AuthService{
		store:       st,
		activity:    activity,
		adminDomain: adminDomain,
		logger:      logger,
	}
}

// Current returns a copy of the signed-in user, or nil.
func (s *AuthService) Current() *model.User {
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// IsLoggedIn reports whether a session is established.
func (s *AuthService) IsLoggedIn() bool {
	return s.current != nil
}

// IsAdmin reports whether the session belongs to an admin.
func (s *AuthService) IsAdmin() bool {
	return s.current != nil && s.current.IsAdmin()
}

// CurrentID returns the id of the signed-in user.
func (s *AuthService) CurrentID() (int64, bool) {
	if s.current == nil {
		return 0, false
	}
	return s.current.ID, true
}

// RequireLogin returns ErrLoginRequired when no session is established.
func (s *AuthService) RequireLogin() error {
	if s.current == nil {
		return model.ErrLoginRequired
	}
	return nil
}

// RequireAdmin returns ErrAdminRequired unless the session is an admin one.
func (s *AuthService) RequireAdmin() error {
	if !s.IsAdmin() {
		return model.ErrAdminRequired
	}
	return nil
}

// LoginUser signs in a regular user by exact email and password.
func (s *AuthService) LoginUser(ctx context.Context, email, password, userAgent string) (model.User, error) {
	u, ok := s.store.FindUser(func(u model.User) bool {
		return u.Email == email && u.Password == password && u.Role == model.RoleUser
	})
	if !ok {
		s.logger.Warn("user login failed", "email", email)
		return model.User{}, model.ErrInvalidCredentials
	}

	s.establish(ctx, u, model.ActionLogin, "User logged in from "+DescribeClient(userAgent))
	return u, nil
}

// LoginAdmin signs in an admin matched by email or case-insensitive name.
//
// When nothing matches but the identifier ends with the admin domain or the
// password contains "admin" in any case, a new admin account is created on
// the spot. This provisioning rule grants admin access to anyone who knows
// it and is kept only for compatibility with the existing portal.
func (s *AuthService) LoginAdmin(ctx context.Context, identifier, password, userAgent string) (model.User, error) {
	fold := cases.Fold()
	foldedID := fold.String(identifier)

	u, ok := s.store.FindUser(func(u model.User) bool {
		return (u.Email == identifier || fold.String(u.Name) == foldedID) &&
			u.Password == password &&
			u.Role == model.RoleAdmin
	})

	if !ok && s.matchesAdminPattern(identifier, password) {
		created, err := s.provisionAdmin(ctx, identifier, password)
		if err != nil {
			return model.User{}, err
		}
		u, ok = created, true
	}

	if !ok {
		s.logger.Warn("admin login failed", "identifier", identifier)
		return model.User{}, model.ErrInvalidCredentials
	}

	s.establish(ctx, u, model.ActionAdminLogin, "Admin logged in from "+DescribeClient(userAgent))
	return u, nil
}

func (s *AuthService) matchesAdminPattern(identifier, password string) bool {
	return strings.HasSuffix(identifier, s.adminDomain) ||
		strings.Contains(strings.ToLower(password), "admin")
}

func (s *AuthService) provisionAdmin(ctx context.Context, identifier, password string) (model.User, error) {
	email := identifier
	if !strings.Contains(identifier, "@") {
		email = fmt.Sprintf("admin%d%s", s.store.NextUserID(), s.adminDomain)
	}

	u, err := s.store.AddUser(ctx, model.User{
		Name:             "System Administrator",
		Email:            email,
		Password:         password,
		Role:             model.RoleAdmin,
		Status:           model.StatusActive,
		RegistrationDate: s.activity.Today(),
	})
	if err != nil {
		return model.User{}, fmt.Errorf("saving provisioned admin: %w", err)
	}

	s.logger.Warn("admin account provisioned on login", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// Signup registers a regular user and signs them in.
func (s *AuthService) Signup(ctx context.Context, in SignupInput, userAgent string) (model.User, error) {
	if in.Password != in.ConfirmPassword {
		return model.User{}, model.ErrPasswordMismatch
	}
	if !in.AgreeTerms {
		return model.User{}, model.ErrTermsNotAccepted
	}
	if _, exists := s.store.FindUser(func(u model.User) bool { return u.Email == in.Email }); exists {
		return model.User{}, model.ErrDuplicateEmail
	}

	u, err := s.store.AddUser(ctx, model.User{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Password:         in.Password,
		Role:             model.RoleUser,
		Status:           model.StatusActive,
		RegistrationDate: s.activity.Today(),
	})
	if err != nil {
		return model.User{}, fmt.Errorf("saving user: %w", err)
	}

	s.establish(ctx, u, model.ActionRegistration, "New user registered from "+DescribeClient(userAgent))
	return u, nil
}

// Logout records the logout of the current session and clears it.
// It reports whether a session was active.
func (s *AuthService) Logout(ctx context.Context, userAgent string) bool {
	if s.current == nil {
		return false
	}

	s.activity.Record(ctx, s.current.ID, model.ActionLogout, "User logged out from "+DescribeClient(userAgent))
	s.clear(ctx)
	return true
}

// Restore loads the persisted session. A session whose user no longer
// exists is discarded.
func (s *AuthService) Restore(ctx context.Context) error {
	saved, err := s.store.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if saved == nil {
		s.current = nil
		return nil
	}

	u, ok := s.store.UserByID(saved.ID)
	if !ok {
		s.logger.Info("discarding session of unknown user", "user_id", saved.ID)
		s.clear(ctx)
		return nil
	}

	s.current = &u
	return nil
}

// establish sets and persists the session, then records the activity.
func (s *AuthService) establish(ctx context.Context, u model.User, action, details string) {
	s.current = &u
	if err := s.store.SaveSession(ctx, u); err != nil {
		s.logger.Error("failed to persist session", "user_id", u.ID, "error", err)
	}
	s.activity.Record(ctx, u.ID, action, details)
}

func (s *AuthService) clear(ctx context.Context) {
	s.current = nil
	if err := s.store.ClearSession(ctx); err != nil {
		s.logger.Error("failed to clear session", "error", err)
	}
}

// userChanged refreshes the session when the signed-in user was edited.
func (s *AuthService) userChanged(ctx context.Context, u model.User) {
	if s.current == nil || s.current.ID != u.ID {
		return
	}
	s.current = &u
	if err := s.store.SaveSession(ctx, u); err != nil {
		s.logger.Error("failed to persist session", "user_id", u.ID, "error", err)
	}
}

// userDeleted drops the session when the signed-in user was removed.
func (s *AuthService) userDeleted(ctx context.Context, id int64) {
	if s.current != nil && s.current.ID == id {
		s.clear(ctx)
	}
}

// DescribeClient turns a user agent string into a short client description
// such as "Chrome 120 on Windows". Unrecognized agents are returned as is.
func DescribeClient(userAgent string) string {
	if userAgent == "" {
		return "unknown client"
	}

	ua := useragent.Parse(userAgent)
	if ua.Name == "" {
		return userAgent
	}

	desc := ua.Name
	if major, _, _ := strings.Cut(ua.Version, "."); major != "" {
		desc += " " + major
	}
	if ua.OS != "" {
		desc += " on " + ua.OS
	}
	return desc
}
