// Package common defines shared constants and sentinel errors used across
// client and server layers of gophauth. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Outward error kinds. The service and the access guard only ever
	// return (wrapped) values from this block.
	ErrValidation     = errors.New("validation error")
	ErrConflict       = errors.New("email already registered")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrorNotFound     = errors.New("not found")
	ErrorInternal     = errors.New("internal error")

	// ErrInvalidCredentials is the single message used for both unknown
	// email and wrong password at login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Password hashing errors.
	ErrHashFailure = errors.New("password hash failure")

	// Token errors.
	ErrTokenMalformed     = errors.New("token malformed")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalidClaims = errors.New("token claims invalid")
	ErrMissingSecret      = errors.New("token signing secret is not configured")
)
