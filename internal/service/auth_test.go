// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/olegiv/gov-portal/internal/model"
)

func TestLoginUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "john@example.com", "password123", nil},
		{"wrong password", "john@example.com", "nope", model.ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "password123", model.ErrInvalidCredentials},
		{"email is case sensitive", "John@example.com", "password123", model.ErrInvalidCredentials},
		{"admin cannot use user login", "admin@gov.in", "admin123", model.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServices(t)
			_, err := s.auth.LoginUser(context.Background(), tt.email, tt.password, testUserAgent)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoginUser err = %v, want %v", err, tt.wantErr)
			}
			if (tt.wantErr == nil) != s.auth.IsLoggedIn() {
				t.Errorf("IsLoggedIn = %v", s.auth.IsLoggedIn())
			}
		})
	}
}

func TestLoginUserEstablishesSession(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	u := s.loginUser(t)

	if s.auth.IsAdmin() {
		t.Error("user session should not be admin")
	}
	saved, err := s.store.LoadSession(ctx)
	if err != nil || saved == nil || saved.ID != u.ID {
		t.Fatalf("persisted session = %+v, %v", saved, err)
	}

	a := lastActivity(t, s.store)
	if a.Action != model.ActionLogin || a.UserID != u.ID {
		t.Errorf("activity = %+v", a)
	}
	if a.Details != "User logged in from Chrome 120 on Windows" {
		t.Errorf("details = %q", a.Details)
	}
	if a.Timestamp != "2024-06-15 10:30:00" {
		t.Errorf("timestamp = %q", a.Timestamp)
	}
}

func TestLoginAdminMatchesNameCaseInsensitively(t *testing.T) {
	s := newServices(t)

	u, err := s.auth.LoginAdmin(context.Background(), "ADMIN USER", "admin123", testUserAgent)
	if err != nil {
		t.Fatalf("LoginAdmin: %v", err)
	}
	if u.ID != 2 {
		t.Errorf("ID = %d, want 2", u.ID)
	}
	if got := len(s.store.Users()); got != 2 {
		t.Errorf("len(Users) = %d, want 2 (no admin provisioned)", got)
	}
	if a := lastActivity(t, s.store); a.Action != model.ActionAdminLogin {
		t.Errorf("action = %q, want %q", a.Action, model.ActionAdminLogin)
	}
}

func TestLoginAdminProvisionsOnDomain(t *testing.T) {
	s := newServices(t)

	u, err := s.auth.LoginAdmin(context.Background(), "someone@gov.in", "hunter2", testUserAgent)
	if err != nil {
		t.Fatalf("LoginAdmin: %v", err)
	}

	if u.ID != 3 || u.Role != model.RoleAdmin || u.Status != model.StatusActive {
		t.Errorf("provisioned admin = %+v", u)
	}
	if u.Name != "System Administrator" || u.Email != "someone@gov.in" {
		t.Errorf("provisioned admin = %+v", u)
	}
	if u.RegistrationDate != "2024-06-15" {
		t.Errorf("RegistrationDate = %q", u.RegistrationDate)
	}
	if _, ok := s.store.UserByID(3); !ok {
		t.Error("provisioned admin not persisted")
	}
	if !s.auth.IsAdmin() {
		t.Error("session should be admin")
	}
}

func TestLoginAdminProvisionsOnPassword(t *testing.T) {
	s := newServices(t)

	u, err := s.auth.LoginAdmin(context.Background(), "ops", "SuperAdmin!", testUserAgent)
	if err != nil {
		t.Fatalf("LoginAdmin: %v", err)
	}
	if u.Email != "admin3@gov.in" {
		t.Errorf("Email = %q, want admin3@gov.in", u.Email)
	}
}

func TestLoginAdminRejectsOtherCredentials(t *testing.T) {
	s := newServices(t)

	_, err := s.auth.LoginAdmin(context.Background(), "someone@example.com", "hunter2", testUserAgent)
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if got := len(s.store.Users()); got != 2 {
		t.Errorf("len(Users) = %d, want 2", got)
	}
	if s.auth.IsLoggedIn() {
		t.Error("no session expected")
	}
}

func TestSignup(t *testing.T) {
	s := newServices(t)
	before := len(s.store.Activities())

	u, err := s.auth.Signup(context.Background(), SignupInput{
		Name: "Jane", Email: "jane@x.com", Phone: "9999999999",
		Password: "pw1", ConfirmPassword: "pw1", AgreeTerms: true,
	}, testUserAgent)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if u.Role != model.RoleUser || u.Status != model.StatusActive || u.ID != 3 {
		t.Errorf("user = %+v", u)
	}
	if cur := s.auth.Current(); cur == nil || cur.ID != u.ID {
		t.Errorf("session = %+v", cur)
	}
	if got := len(s.store.Activities()) - before; got != 1 {
		t.Fatalf("activities appended = %d, want 1", got)
	}
	if a := lastActivity(t, s.store); a.Action != model.ActionRegistration || a.UserID != u.ID {
		t.Errorf("activity = %+v", a)
	}
}

func TestSignupErrors(t *testing.T) {
	base := SignupInput{Name: "Jane", Email: "jane@x.com", Password: "pw1", ConfirmPassword: "pw1", AgreeTerms: true}

	tests := []struct {
		name    string
		mutate  func(*SignupInput)
		wantErr error
	}{
		{"password mismatch", func(in *SignupInput) { in.ConfirmPassword = "pw2" }, model.ErrPasswordMismatch},
		{"terms", func(in *SignupInput) { in.AgreeTerms = false }, model.ErrTermsNotAccepted},
		{"duplicate email", func(in *SignupInput) { in.Email = "john@example.com" }, model.ErrDuplicateEmail},
		// Mismatch is checked before the terms.
		{"mismatch wins", func(in *SignupInput) { in.ConfirmPassword = "x"; in.AgreeTerms = false }, model.ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServices(t)
			in := base
			tt.mutate(&in)

			_, err := s.auth.Signup(context.Background(), in, testUserAgent)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got := len(s.store.Users()); got != 2 {
				t.Errorf("len(Users) = %d, want 2", got)
			}
			if s.auth.IsLoggedIn() {
				t.Error("no session expected")
			}
		})
	}
}

func TestSignupDuplicateEmailIsCaseSensitive(t *testing.T) {
	s := newServices(t)

	_, err := s.auth.Signup(context.Background(), SignupInput{
		Name: "John", Email: "JOHN@example.com", Password: "a", ConfirmPassword: "a", AgreeTerms: true,
	}, testUserAgent)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
}

func TestLogoutTwice(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := s.loginUser(t)

	if !s.auth.Logout(ctx, testUserAgent) {
		t.Fatal("first Logout should report an active session")
	}
	a := lastActivity(t, s.store)
	if a.Action != model.ActionLogout || a.UserID != u.ID {
		t.Errorf("activity = %+v", a)
	}

	activities := len(s.store.Activities())
	users := len(s.store.Users())
	if s.auth.Logout(ctx, testUserAgent) {
		t.Error("second Logout should be a no-op")
	}
	if len(s.store.Activities()) != activities || len(s.store.Users()) != users {
		t.Error("second Logout changed the store")
	}
	if saved, _ := s.store.LoadSession(ctx); saved != nil {
		t.Errorf("session still persisted: %+v", saved)
	}
}

func TestRestore(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	john, _ := s.store.UserByID(1)
	if err := s.store.SaveSession(ctx, john); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := s.auth.Restore(ctx); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if cur := s.auth.Current(); cur == nil || cur.ID != 1 {
		t.Errorf("Current = %+v, want John", cur)
	}
}

func TestRestoreDropsUnknownUser(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	if err := s.store.SaveSession(ctx, model.User{ID: 42, Name: "Ghost"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := s.auth.Restore(ctx); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.auth.IsLoggedIn() {
		t.Error("session of a missing user should be discarded")
	}
	if saved, _ := s.store.LoadSession(ctx); saved != nil {
		t.Errorf("stale session still persisted: %+v", saved)
	}
}

func TestDescribeClient(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{testUserAgent, "Chrome 120 on Windows"},
		{"", "unknown client"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := DescribeClient(tt.ua); got != tt.want {
				t.Errorf("DescribeClient(%q) = %q, want %q", tt.ua, got, tt.want)
			}
		})
	}
}
