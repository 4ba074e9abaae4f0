// Package common defines sentinel errors shared across application layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors. ErrorNotFound also covers writes that matched
	// no record because the requester does not own it; the two cases are
	// deliberately indistinguishable.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid, malformed or expired token).
	ErrorInvalidToken = errors.New("invalid token")
)
