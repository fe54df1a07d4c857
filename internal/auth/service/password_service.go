package service

import (
	"github.com/allisson/go-pwdhash"
)

// dummyPassword is hashed once at construction to give Verify a realistic
// workload when authenticating a non-existent user. The plaintext compared
// against it never matches.
const dummyPassword = "taskman-dummy-password-for-timing"

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher    *pwdhash.PasswordHasher
	dummyHash string
}

// NewPasswordService creates a new PasswordService instance using Argon2id
// hashing with the interactive policy (suitable for user-facing logins).
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		// This should never happen with a valid policy
		panic(err)
	}

	dummyHash, err := hasher.Hash([]byte(dummyPassword))
	if err != nil {
		panic(err)
	}

	return &passwordService{
		hasher:    hasher,
		dummyHash: dummyHash,
	}
}

// Hash hashes a plain text password using Argon2id. The hash embeds a
// per-call random salt, so equal passwords produce different hashes.
func (s *passwordService) Hash(plainPassword string) (string, error) {
	return s.hasher.Hash([]byte(plainPassword))
}

// Verify performs a constant-time comparison between a plain password and its
// hash. A malformed stored hash is reported as a mismatch rather than an
// error: the caller only learns that authentication failed.
func (s *passwordService) Verify(plainPassword string, hashedPassword string) bool {
	ok, err := s.hasher.Verify([]byte(plainPassword), hashedPassword)
	if err != nil {
		return false
	}
	return ok
}

// DummyHash returns the precomputed hash used to equalize timing when the
// user lookup comes back empty.
func (s *passwordService) DummyHash() string {
	return s.dummyHash
}
