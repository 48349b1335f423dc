package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/session"
)

// RequireAdmin returns middleware that admits requests carrying a live
// admin session cookie and puts the admin email on the request context.
//
// API requests without a session get a 401 JSON body; page requests are
// redirected to the login form with the original path in "next".
func RequireAdmin(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(session.CookieName); err == nil {
				if sess, ok := sessions.Get(cookie.Value); ok {
					ctx := core.ContextWithAdmin(r.Context(), sess.Admin)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			slog.Debug("auth: no valid session",
				"path", r.URL.Path,
				"method", r.Method,
				"remote_addr", r.RemoteAddr,
			)

			if strings.HasPrefix(r.URL.Path, "/api/") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"session expired","code":"AUTH002"}` + "\n"))
				return
			}

			target := "/admin/login"
			if r.Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}
