// Package domain defines the core authentication entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenKind identifies the purpose of an issued token.
type TokenKind string

const (
	// KindAccess is a short-lived token used to access protected resources.
	KindAccess TokenKind = "access"
	// KindRefresh is a long-lived token used only to mint new access tokens.
	KindRefresh TokenKind = "refresh"
)

const (
	// AccessTokenTTL is the lifetime of access tokens.
	AccessTokenTTL = 15 * time.Minute
	// RefreshTokenTTL is the lifetime of refresh tokens.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// TokenTypeBearer is the token type label returned with every token pair.
	TokenTypeBearer = "bearer"
)

// Claims is the payload embedded in a signed token. Tokens are self-contained:
// validity is derived purely from the signature and expiry, nothing is stored
// server-side.
type Claims struct {
	// Email is the subject email ("sub" claim).
	Email string
	// UserID is the subject identifier ("id" claim).
	UserID uuid.UUID
	// Kind is the token kind ("type" claim).
	Kind TokenKind
	// ExpiresAt is the absolute expiry instant ("exp" claim).
	ExpiresAt time.Time
}

// TokenPair is the tuple returned at registration, login, and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// Identity is the caller identity resolved from a validated access token.
// It is trusted as-is for the lifetime of the request; no store round trip.
type Identity struct {
	Email  string
	UserID uuid.UUID
}
