package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/allisson/taskman/internal/auth/domain"
)

// signingMethod is the only accepted signature algorithm. Tokens presenting
// any other algorithm fail verification.
var signingMethod = jwt.SigningMethodHS256

// tokenClaims is the wire representation of the claim set:
// {sub: email, id: user id, type: token kind, exp: expiry}.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Kind   string `json:"type"`
}

// tokenCodec implements TokenCodec using HMAC-SHA256 signed tokens.
type tokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a new TokenCodec signing with the given secret.
// The secret is injected at construction and never read from ambient state,
// so tests can run with distinct secrets.
func NewTokenCodec(secret []byte) (TokenCodec, error) {
	if len(secret) == 0 {
		return nil, domain.ErrMissingSigningSecret
	}
	return &tokenCodec{secret: secret}, nil
}

// Encode builds the claim set and signs it with the process-wide secret.
func (c *tokenCodec) Encode(
	email string,
	userID uuid.UUID,
	kind domain.TokenKind,
	ttl time.Duration,
) (string, error) {
	now := time.Now().UTC()

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID.String(),
		Kind:   string(kind),
	}

	return jwt.NewWithClaims(signingMethod, claims).SignedString(c.secret)
}

// Decode verifies the signature and expiry and returns the claim set.
//
// All failure modes collapse to domain.ErrInvalidToken: callers cannot tell
// "expired" from "tampered", which avoids giving attackers an oracle. A token
// that verifies but carries an empty or unparsable subject/id yields zero
// values in the returned claims; consumers reject those as malformed.
func (c *tokenCodec) Decode(token string) (*domain.Claims, error) {
	claims := &tokenClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	// Absent or garbage id claim becomes uuid.Nil; consumers treat it as a
	// missing claim.
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		userID = uuid.Nil
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &domain.Claims{
		Email:     claims.Subject,
		UserID:    userID,
		Kind:      domain.TokenKind(claims.Kind),
		ExpiresAt: expiresAt,
	}, nil
}
