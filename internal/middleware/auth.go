package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bar-comandas/web/internal/backend"
	"github.com/bar-comandas/web/internal/session"
)

// RequireSession sends visitors without a valid session to the login screen
// before any data is fetched. Signed-in requests carry the session and its
// backend token in their context.
func RequireSession(sessions *session.Manager, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := sessions.Current(r)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					logger.Info("session refused", "path", r.URL.Path, "error", err)
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := session.NewContext(r.Context(), s)
			ctx = backend.WithToken(ctx, s.Token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin lets only ADMIN users through. It must run after RequireSession.
func RequireAdmin(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session.FromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !s.IsAdmin() {
				logger.Warn("admin area denied", "login", s.Login, "role", s.Role, "path", r.URL.Path)
				http.Redirect(w, r, "/mesas", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
