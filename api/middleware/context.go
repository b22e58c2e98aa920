package middleware

import (
	"context"

	pkgAuth "github.com/brightlaunch/academy-cms-backend/pkg/auth"
	"github.com/google/uuid"
)

type contextKey string

const ctxClaims contextKey = "access_claims"

// ClaimsFromContext returns the parsed access token claims seeded by the
// Auth middleware, or nil on unauthenticated requests.
func ClaimsFromContext(ctx context.Context) *pkgAuth.AccessTokenClaims {
	if ctx == nil {
		return nil
	}
	if claims, ok := ctx.Value(ctxClaims).(*pkgAuth.AccessTokenClaims); ok {
		return claims
	}
	return nil
}

// OperatorIDFromContext returns the authenticated operator's id, or uuid.Nil.
func OperatorIDFromContext(ctx context.Context) uuid.UUID {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.OperatorID
	}
	return uuid.Nil
}

// AccessIDFromContext returns the session's access id (the token's jti).
func AccessIDFromContext(ctx context.Context) string {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.ID
	}
	return ""
}

// WithClaims injects claims into the context. Exposed for handler tests.
func WithClaims(ctx context.Context, claims *pkgAuth.AccessTokenClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxClaims, claims)
}
