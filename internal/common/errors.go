// Package common defines shared constants and sentinel errors used across
// client and server layers of CrossClip. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors for shared items.
	ErrorEmptyContent    = errors.New("content is empty")
	ErrorContentTooLarge = errors.New("content too large")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Identity provider rejected the presented credential.
	ErrIdentityRejected = errors.New("identity rejected")
)
