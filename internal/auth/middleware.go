package auth

import (
	"context"
	"net/http"
	"strings"

	"openmusic/internal/httpx"
)

type ctxClaimsKey struct{}

// Middleware validates a Bearer access token against the shared signing key
// and injects the caller's identity as the X-User-Id header for downstream
// handlers.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				httpx.WriteFail(w, http.StatusUnauthorized, "missing Authorization header")
				return
			}
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httpx.WriteFail(w, http.StatusUnauthorized, "invalid Authorization header")
				return
			}

			claims, ok := parseToken(parts[1], secret, "access")
			if !ok {
				httpx.WriteFail(w, http.StatusUnauthorized, "invalid token")
				return
			}

			r.Header.Set("X-User-Id", claims.UserID)

			ctx := context.WithValue(r.Context(), ctxClaimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the token claims injected by Middleware.
func ClaimsFromContext(ctx context.Context) (*TokenClaims, bool) {
	claims, ok := ctx.Value(ctxClaimsKey{}).(*TokenClaims)
	return claims, ok && claims != nil
}
