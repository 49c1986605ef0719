// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the portal records (users, activity entries,
// feedback, content items, navigation entries) and the error kinds shared
// by the services.
package model

import (
	"unicode"
	"unicode/utf8"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DateLayout is the calendar-date format used by every persisted date.
const DateLayout = "2006-01-02"

// User represents a portal account.
// Passwords are kept in plaintext to stay compatible with the persisted
// user list of the browser portal.
type User struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	Status           string `json:"status"`
	RegistrationDate string `json:"registrationDate"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive returns true if the account status is active.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Initial returns the upper-cased first letter of the user's name, used as avatar.
func (u *User) Initial() string {
	r, size := utf8.DecodeRuneInString(u.Name)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r))
}

// IsValidRole checks if a role is known.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// IsValidUserStatus checks if a user status is known.
func IsValidUserStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
