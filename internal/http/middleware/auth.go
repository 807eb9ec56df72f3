package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pandukaz/debtbook/internal/session"
)

type contextKey struct{}

var sessionKey contextKey

// Auth verifies the bearer token and places the resulting session in the
// request context. Expired and revoked tokens both end the request here.
func Auth(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "authorization header missing", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			sess, err := mgr.Verify(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, session.ErrExpired) {
					http.Error(w, "session expired", http.StatusUnauthorized)
					return
				}

				http.Error(w, "invalid token", http.StatusUnauthorized)

				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom returns the session placed in the context by Auth.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok
}
