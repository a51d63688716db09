// Package common defines shared constants and sentinel errors used across
// the EcoPoints client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Session errors.
	ErrSessionMissing = errors.New("no active session")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
