// Package common defines shared constants and sentinel errors used across
// client and server layers of blindcalc. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Cryptographic errors. Each is final for the call that raised it: the
	// caller has to change its input before trying again.
	ErrKeyGen          = errors.New("key generation failed")
	ErrRange           = errors.New("operand out of range")
	ErrVectorLength    = errors.New("query vector length mismatch")
	ErrEmptySession    = errors.New("aggregation session has no submissions")
	ErrMalformedResult = errors.New("malformed membership result")
	ErrKeyMismatch     = errors.New("ciphertext public key does not match session")
	ErrInvalidSecret   = errors.New("invalid trapdoor secret")

	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
