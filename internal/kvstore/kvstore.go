// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package kvstore provides the key-value persistence surface the record
// store is mirrored to. Values are opaque bytes; a missing key is reported
// with ErrNotFound and is never an unexpected failure.
package kvstore

import (
	"context"
)

// Storage defines the interface for key-value backends.
// All implementations must be safe for concurrent use.
type Storage interface {
	// Get retrieves the value stored under key.
	// Returns nil and ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Error represents an error type for storage operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the key is absent.
	ErrNotFound Error = "key not found"

	// ErrClosed indicates the storage has been closed.
	ErrClosed Error = "storage closed"
)
