package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vorapat/event-registry-api/internal/model"
	"github.com/vorapat/event-registry-api/pkg/auth"
	"github.com/vorapat/event-registry-api/pkg/httpx"
)

type contextKey struct{}

var userClaimsKey = contextKey{}

// Authenticate verifies the Authorization: Bearer <token> header against the
// access token secret and stores the caller's claims in the request context.
func Authenticate(jwtAuth auth.JWTAuthenticator, accessTokenSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httpx.Error(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				httpx.Error(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims := &auth.UserClaims{}
			if _, err := jwtAuth.ValidateTokenWithClaims(parts[1], accessTokenSecret, claims); err != nil {
				httpx.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose access token does not carry the admin
// role. It must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || model.Role(claims.Role) != model.RoleAdmin {
			httpx.Error(w, http.StatusForbidden, "insufficient permissions")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext returns the authenticated caller's claims, if any.
func ClaimsFromContext(ctx context.Context) (*auth.UserClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*auth.UserClaims)
	return claims, ok
}
