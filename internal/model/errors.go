// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// Error is the error kind returned by portal services.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrInvalidCredentials indicates no account matched the login attempt.
	ErrInvalidCredentials Error = "invalid credentials"

	// ErrPasswordMismatch indicates the signup password confirmation differs.
	ErrPasswordMismatch Error = "passwords do not match"

	// ErrTermsNotAccepted indicates the signup terms checkbox was unchecked.
	ErrTermsNotAccepted Error = "terms not accepted"

	// ErrDuplicateEmail indicates another account already uses the email.
	ErrDuplicateEmail Error = "email already registered"

	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound Error = "not found"

	// ErrValidationFailed indicates a required field is missing or malformed.
	ErrValidationFailed Error = "validation failed"

	// ErrLoginRequired indicates the operation needs a signed-in session.
	ErrLoginRequired Error = "login required"

	// ErrAdminRequired indicates the operation needs an admin session.
	ErrAdminRequired Error = "admin session required"

	// ErrUnknownCommand indicates the presentation layer sent an unsupported command.
	ErrUnknownCommand Error = "unknown command"

	// ErrInvalidArguments indicates the command arguments could not be decoded.
	ErrInvalidArguments Error = "invalid command arguments"
)

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists the invalid fields of a submission.
// It matches ErrValidationFailed with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(names, ", "))
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
