// Package web provides the HTTP server for the public site, the admin CMS
// and the admin JSON API.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/nonprofit/internal/config"
	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/session"
	"github.com/JonMunkholm/nonprofit/internal/web/middleware"
	"github.com/JonMunkholm/nonprofit/internal/web/templates"
)

// Server is the HTTP server for the site.
type Server struct {
	service  *core.Service
	sessions *session.Store
	auth     *session.Authenticator
	cfg      *config.Config
	site     templates.Site

	router *chi.Mux
	server *http.Server

	formLimiter  *rateLimiter
	loginLimiter *rateLimiter
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, sessions *session.Store, auth *session.Authenticator, cfg *config.Config) *Server {
	s := &Server{
		service:  service,
		sessions: sessions,
		auth:     auth,
		cfg:      cfg,
		site: templates.Site{
			Name:         cfg.Site.Name,
			Tagline:      cfg.Site.Tagline,
			ContactEmail: cfg.Site.ContactEmail,
		},
		router:       chi.NewRouter(),
		formLimiter:  newRateLimiter(cfg.Rate.Enabled, cfg.Rate.FormsPerMinute, time.Minute),
		loginLimiter: newRateLimiter(cfg.Rate.Enabled, cfg.Rate.LoginPerMinute, time.Minute),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.RequestMetadata)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	r := s.router
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, core.ErrNotFound, http.StatusNotFound)
	})

	// Public pages
	r.Get("/", s.handleHome)
	r.Get("/about", s.handleAbout)
	r.Get("/programs", s.handlePrograms)
	r.Get("/programs/{slug}", s.handleProgram)
	r.Get("/university", s.handleUniversity)
	r.Get("/news", s.handleNews)
	r.Get("/news/{slug}", s.handleArticle)
	r.Get("/videos", s.handleVideos)
	r.Get("/events", s.handleEvents)
	r.Get("/events/{slug}", s.handleEvent)
	r.Get("/contact", s.handleContactPage)
	r.Get("/get-involved", s.handleGetInvolved)
	r.Get("/newsletter/unsubscribe", s.handleUnsubscribe)

	// Public forms
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit(s.formLimiter))
		r.Post("/contact", s.handleContactSubmit)
		r.Post("/donate", s.handleDonate)
		r.Post("/volunteer", s.handleVolunteer)
		r.Post("/newsletter/subscribe", s.handleSubscribe)
	})

	// Admin
	r.Route("/admin", func(r chi.Router) {
		r.Get("/login", s.handleLoginPage)
		r.With(s.rateLimit(s.loginLimiter)).Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(s.sessions))

			r.Post("/logout", s.handleLogout)
			r.Get("/", s.handleDashboard)
			r.Get("/audit-log", s.handleAuditLog)
			r.Get("/audit-log/export.csv", s.handleAuditExport)

			r.Get("/newsletter/compose", s.handleComposePage)
			r.Post("/newsletter/compose", s.handleCompose)
			r.Get("/newsletter/preview/{id}", s.handlePreview)
			r.Post("/newsletter/send/{id}", s.handleSend)

			r.Get("/{resource}", s.handleList)
			r.Get("/{resource}/new", s.handleNew)
			r.Get("/{resource}/export.csv", s.handleExport)
			r.Post("/{resource}", s.handleCreate)
			r.Get("/{resource}/{id}/edit", s.handleEdit)
			r.Post("/{resource}/{id}", s.handleUpdate)
			r.Post("/{resource}/{id}/delete", s.handleDelete)
		})
	})

	// JSON API
	r.Get("/api/health", s.handleHealth)
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(s.sessions))

		r.Get("/resources", s.handleAPIResources)
		r.Get("/stats", s.handleAPIStats)
		r.Get("/{resource}", s.handleAPIList)
		r.Post("/{resource}", s.handleAPICreate)
		r.Get("/{resource}/{id}", s.handleAPIGet)
		r.Put("/{resource}/{id}", s.handleAPIUpdate)
		r.Delete("/{resource}/{id}", s.handleAPIDelete)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Inline styles for the layout; video embeds from youtube-nocookie.
			if enableCSP {
				w.Header().Set("Content-Security-Policy",
					"default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; "+
						"frame-src https://www.youtube-nocookie.com; form-action 'self'; frame-ancestors 'none'")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimiter is a fixed-window request counter per client IP.
type rateLimiter struct {
	enabled bool
	rate    int           // requests per window
	window  time.Duration // window length
	now     func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a limiter allowing rate requests per window.
func newRateLimiter(enabled bool, rate int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		enabled:  enabled,
		rate:     rate,
		window:   window,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	v, exists := rl.visitors[ip]
	if !exists || now.Sub(v.lastReset) > rl.window {
		rl.visitors[ip] = &visitor{tokens: rl.rate - 1, lastReset: now}
		return true
	}

	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

// sweep drops visitors idle for two windows. Callers hold rl.mu.
func (rl *rateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for ip, v := range rl.visitors {
		if now.Sub(v.lastReset) > rl.window*2 {
			delete(rl.visitors, ip)
		}
	}
}

// rateLimit returns middleware that rejects clients over rl's limit.
func (s *Server) rateLimit(rl *rateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.enabled && !rl.allow(clientIP(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
				s.respondError(w, r, errRateLimited, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr, already resolved by
// TrustedRealIP.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// writeJSON encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
