// Package middleware provides HTTP middlewares for authentication, request
// logging, metrics, and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const principalKey ctxKey = "principal"

// Verifier validates an identity handle and resolves its principal.
type Verifier interface {
	Introspect(ctx context.Context, handle string) (string, error)
}

// Identity is a middleware that resolves the caller principal from a bearer
// delegation.
//
// Requests without an Authorization header pass through in the anonymous
// context: the canister operations accept anonymous callers. A delegation
// that is present but fails verification is rejected, so a caller can never
// be silently downgraded to anonymous.
//
// On success the principal is stored in the request context for downstream
// handlers.
func Identity(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}
			handle, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}
			principal, err := verifier.Introspect(r.Context(), handle)
			if err != nil {
				http.Error(w, "invalid delegation", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipalFromContext extracts the caller principal from the request
// context. Returns an empty string for anonymous callers.
func GetPrincipalFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(principalKey).(string); ok {
		return s
	}
	return ""
}
