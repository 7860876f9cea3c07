package http

import (
	"net/http"

	"github.com/RobuxEmperium/robux-site/internal/platform/httpserver"
	"github.com/RobuxEmperium/robux-site/modules/identity/requestidentity"
	"github.com/RobuxEmperium/robux-site/modules/identity/infrastructure/session"
)

// Authenticate resolves the session cookie into a request Identity.
// Anonymous and expired-session requests pass through without an
// identity; handlers that require authentication reject them.
func Authenticate(sessions *session.Store) httpserver.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err == nil {
				if sess, ok := sessions.Get(cookie.Value); ok {
					ctx := requestidentity.WithIdentity(r.Context(), requestidentity.Identity{
						UserID: sess.UserID,
						Email:  sess.Email,
						Role:   sess.Role,
					})
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
