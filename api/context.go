package api

import (
	"context"

	"github.com/rpupo63/portfolio-backend/auth"
)

type keyType string

const claimsKey keyType = "claims"

// ctxWithClaims stores the verified admin claims on the request context
func ctxWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetClaims returns the claims set by requireAdmin, or nil
func ctxGetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}
