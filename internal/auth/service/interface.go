// Package service provides technical services for authentication operations.
//
// This package implements password hashing with Argon2id and stateless signed
// token encoding/decoding using HMAC-SHA256.
package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/taskman/internal/auth/domain"
)

// PasswordService defines operations for password hashing and verification.
// Implementations must use a slow, salted password-hashing algorithm
// (e.g., argon2, bcrypt); equal plaintexts must produce different hashes
// across calls.
type PasswordService interface {
	// Hash hashes a plain text password for storage.
	Hash(plainPassword string) (hashedPassword string, err error)

	// Verify compares a plain text password against a stored hash.
	// Returns false on mismatch or on a malformed stored hash; it never
	// surfaces library errors to the caller.
	Verify(plainPassword string, hashedPassword string) bool

	// DummyHash returns a fixed valid hash for timing-equalization when the
	// looked-up user does not exist. Verifying against it always fails.
	DummyHash() string
}

// TokenCodec defines operations for building and parsing signed, time-bound
// tokens. Encode and Decode are pure and non-blocking; no token state is
// stored server-side.
type TokenCodec interface {
	// Encode builds and signs a token carrying the subject email, subject id,
	// token kind, and an expiry of now+ttl.
	Encode(email string, userID uuid.UUID, kind domain.TokenKind, ttl time.Duration) (string, error)

	// Decode verifies the signature and expiry of a token and returns its
	// claims. Every failure mode (bad signature, algorithm mismatch, expired,
	// unparsable) returns domain.ErrInvalidToken.
	Decode(token string) (*domain.Claims, error)
}
