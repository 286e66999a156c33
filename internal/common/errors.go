// Package common defines shared constants and sentinel errors used across
// the client and server layers of Reelmark. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrValidation = errors.New("validation error")

	// ErrAccountMissing is returned when an operation references an account
	// name that has no local row.
	ErrAccountMissing = errors.New("account does not exist")
)
