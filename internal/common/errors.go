// Package common defines shared constants and sentinel errors used across
// the server layers of the daily diet service. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrorStore wraps any failure of the persistence layer itself.
	ErrorStore = errors.New("store error")

	// Input errors, raised before any store mutation.
	ErrorValidation = errors.New("validation error")

	// Session errors (missing, unknown or revoked session token).
	ErrorUnauthorized = errors.New("unauthorized")

	// Credential errors (unknown email or wrong password).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Cookie errors (malformed, tampered or expired signed token).
	ErrInvalidToken = errors.New("invalid token")
)
