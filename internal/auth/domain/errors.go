package domain

import (
	"github.com/allisson/taskman/internal/errors"
)

// Domain-specific errors for authentication operations.
var (
	// ErrInvalidCredentials indicates a failed login. It is intentionally
	// non-specific: "no such user" and "wrong password" are indistinguishable
	// to prevent email enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates a token that failed verification for any
	// reason: bad signature, algorithm mismatch, expiry, or unparsable
	// structure. The reasons are deliberately collapsed into one error.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired token")

	// ErrWrongTokenKind indicates a token whose kind claim does not match the
	// operation consuming it (e.g., an access token sent to the refresh endpoint).
	ErrWrongTokenKind = errors.Wrap(errors.ErrUnauthorized, "wrong token kind")

	// ErrMalformedClaims indicates a token that verified but is missing
	// required claims (subject or id).
	ErrMalformedClaims = errors.Wrap(errors.ErrInvalidInput, "malformed token claims")

	// ErrMissingSigningSecret indicates the signing secret was not configured.
	ErrMissingSigningSecret = errors.New("signing secret is required")
)
