package repository

import (
	"context"
)

// Keys under which the session is persisted.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// SessionCache is the local key-value cache that mirrors the session so it
// survives a restart. It is a convenience cache, not a source of truth.
type SessionCache interface {
	// Get returns the value stored under key, or an error wrapping
	// apperrors.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
