package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/eventhub/backend/internal/api"
)

// TokenVerifier checks a bearer token and returns the user id it was
// issued for. Satisfied by auth.TokenManager.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type contextKey struct{}

var userIDKey contextKey

// UserID returns the authenticated caller's user id, or "" when the
// request did not pass RequireAuth. Handlers never learn which
// mechanism produced the identity.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// RequireAuth validates the Authorization header and injects the
// caller's user id into the request context.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				api.Error(w, http.StatusUnauthorized, "Access denied. No authorization header provided.", nil)
				return
			}

			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				api.Error(w, http.StatusUnauthorized, "Access denied. Invalid authorization format. Use: Bearer <token>", nil)
				return
			}
			if parts[1] == "" {
				api.Error(w, http.StatusUnauthorized, "Access denied. No token provided.", nil)
				return
			}

			userID, err := verifier.Verify(parts[1])
			if err != nil {
				api.Error(w, http.StatusUnauthorized, "Invalid or expired token.", err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
