package middleware

import (
	"context"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/ports"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity injects the authenticated user's claims into the context.
func WithIdentity(ctx context.Context, claims *ports.SessionClaims) context.Context {
	return context.WithValue(ctx, identityContextKey, claims)
}

// IdentityFromContext returns the authenticated user's claims, or nil.
func IdentityFromContext(ctx context.Context) *ports.SessionClaims {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return nil
	}
	c, _ := v.(*ports.SessionClaims)
	return c
}
