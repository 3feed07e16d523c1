package auth

import "context"

type ctxKey string

const claimsKey ctxKey = "claims"

// ContextWithClaims прикрепляет claims к контексту запроса
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext достает claims, прикрепленные Auth Gate
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}
