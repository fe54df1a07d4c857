package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/taskman/internal/auth/domain"
	authService "github.com/allisson/taskman/internal/auth/service"
	apperrors "github.com/allisson/taskman/internal/errors"
	"github.com/allisson/taskman/internal/httputil"
)

// AuthenticationMiddleware resolves the caller identity from a Bearer token in
// the Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Decodes and verifies the token signature and expiry
// 3. Requires an access token; refresh tokens are rejected
// 4. Stores the identity {email, user id} in the request context
// 5. Allows downstream handlers to access it via GetIdentity()
//
// No database round trip happens here; the identity comes entirely from the
// verified claims.
//
// Error handling: every failure mode (missing header, malformed header, bad
// signature, expired token, wrong token kind, missing claims) produces the
// same 401 Unauthorized with a WWW-Authenticate: Bearer header. The uniform
// response avoids leaking which check failed.
func AuthenticationMiddleware(
	tokenCodec authService.TokenCodec,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		claims, err := tokenCodec.Decode(token)
		if err != nil {
			logger.Debug("authentication failed: invalid token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Only access tokens grant access to protected routes
		if claims.Kind != authDomain.KindAccess {
			logger.Debug("authentication failed: wrong token kind")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if claims.Email == "" || claims.UserID == uuid.Nil {
			logger.Debug("authentication failed: missing identity claims")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		identity := &authDomain.Identity{
			Email:  claims.Email,
			UserID: claims.UserID,
		}
		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", identity.UserID.String()),
		)

		c.Next()
	}
}
