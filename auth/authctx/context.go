// Package authctx carries authentication claims through a request context.
//
//	ctx = authctx.Set(ctx, claims)
//	claims, err := authctx.Require[*MyClaims](ctx) // UnauthorizedError when absent
package authctx

import (
	"context"

	apperrors "github.com/kbukum/errguard/errors"
)

type contextKey struct{}

var claimsKey = contextKey{}

// Set stores claims in ctx.
func Set(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Get returns the claims in ctx if present and of type T.
func Get[T any](ctx context.Context) (T, bool) {
	claims, ok := ctx.Value(claimsKey).(T)
	return claims, ok
}

// Require returns the claims in ctx, or an UnauthorizedError when they are
// missing or of another type.
func Require[T any](ctx context.Context) (T, error) {
	claims, ok := Get[T](ctx)
	if !ok {
		return claims, apperrors.Unauthorized("")
	}
	return claims, nil
}
