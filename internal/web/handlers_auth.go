package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/session"
	"github.com/JonMunkholm/nonprofit/internal/web/templates"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if _, ok := s.sessions.Get(cookie.Value); ok {
			redirect(w, r, "/admin")
			return
		}
	}
	next := safeNext(r.URL.Query().Get("next"))
	s.renderPublic(w, r, http.StatusOK, "Sign in", templates.LoginPage(s.site, "", next, ""))
}

// handleLogin checks the admin credentials and starts a session.
// Both outcomes are audited.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	next := safeNext(form["next"])

	admin, err := s.auth.Check(form["email"], form["password"])
	if err != nil {
		s.service.LogAudit(r.Context(), core.AuditLogParams{
			Action:  core.ActionLoginFailed,
			Summary: strings.TrimSpace(form["email"]),
		})
		msg := core.MapError(err)
		s.renderPublic(w, r, http.StatusUnauthorized, "Sign in",
			templates.LoginPage(s.site, form["email"], next, msg.Message))
		return
	}

	sess := s.sessions.Create(admin)
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.cfg.Security.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	s.service.LogAudit(core.ContextWithAdmin(r.Context(), admin), core.AuditLogParams{
		Action: core.ActionLogin,
	})
	redirect(w, r, next)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.cfg.Security.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	s.service.LogAudit(r.Context(), core.AuditLogParams{Action: core.ActionLogout})
	redirect(w, r, "/admin/login")
}

// safeNext keeps post-login redirects inside the admin.
func safeNext(next string) string {
	inAdmin := next == "/admin" || strings.HasPrefix(next, "/admin/") || strings.HasPrefix(next, "/admin?")
	if !inAdmin || strings.Contains(next, `\`) || strings.HasPrefix(next, "/admin/login") {
		return "/admin"
	}
	return next
}
