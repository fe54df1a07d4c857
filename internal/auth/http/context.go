// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"context"

	authDomain "github.com/allisson/taskman/internal/auth/domain"
)

// identityKey is a context key type for storing the resolved caller identity.
type identityKey struct{}

// WithIdentity stores the resolved caller identity in the context.
// This is called by the authentication middleware after successful token validation.
func WithIdentity(ctx context.Context, identity *authDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the caller identity from the context.
// Returns (identity, true) if present, or (nil, false) if no identity was set.
func GetIdentity(ctx context.Context) (*authDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authDomain.Identity)
	return identity, ok
}
