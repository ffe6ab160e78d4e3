package middleware

import (
	"context"
	"net/http"

	"github.com/Vishal-43/img-craft/internal/session"
)

type contextKey string

const SessionKey contextKey = "session"

// Session loads the visitor's session once per request and injects it into context.
func Session(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), SessionKey, m.Load(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the session injected by Session.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*session.Session)
	return s, ok
}
