package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/erppro/identity/internal/api/apierr"
	"github.com/erppro/identity/internal/model"
	"github.com/erppro/identity/internal/services/session"
)

type contextKey string

const accountContextKey contextKey = "account"

// Auth creates authentication middleware. The bearer token must match the
// token of the session service's current state.
func Auth(sessions *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			state := sessions.State()
			if !state.Authenticated || state.Token != token {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, state.Account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetAccount returns the authenticated account from the request context
func GetAccount(ctx context.Context) *model.SanitizedAccount {
	account, _ := ctx.Value(accountContextKey).(*model.SanitizedAccount)
	return account
}

// MustGetAccount returns the authenticated account or panics
func MustGetAccount(ctx context.Context) *model.SanitizedAccount {
	account := GetAccount(ctx)
	if account == nil {
		panic("no account in context - auth middleware not applied?")
	}
	return account
}
