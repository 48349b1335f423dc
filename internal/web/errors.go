package web

// errors.go maps domain errors to HTTP responses.
//
// Every error is logged with its technical detail and request id, then
// shown to the client as a core.UserMessage: JSON for API requests, a
// full page for browsers.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/logging"
	"github.com/JonMunkholm/nonprofit/internal/session"
	"github.com/JonMunkholm/nonprofit/internal/web/templates"
)

var errRateLimited = errors.New("rate limit exceeded")

// ErrorResponse is the JSON body of a failed API request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Action  string            `json:"action,omitempty"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// statusFor returns the HTTP status of a service error.
func statusFor(err error) int {
	if _, ok := core.AsValidationErrors(err); ok {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrUnknownResource):
		return http.StatusNotFound
	case errors.Is(err, core.ErrReadOnly):
		return http.StatusForbidden
	case errors.Is(err, core.ErrAlreadySent):
		return http.StatusConflict
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// fail responds with the status statusFor picks for err.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.respondError(w, r, err, statusFor(err))
}

// respondError logs err and writes a user-facing error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	if wantsJSON(r) {
		resp := ErrorResponse{
			Error:   userMsg.Message,
			Message: userMsg.Message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		}
		if verrs, ok := core.AsValidationErrors(err); ok {
			resp.Fields = verrs.ByField()
		}
		writeJSON(w, statusCode, resp)
		return
	}

	body := templates.ErrorPage(statusCode, userMsg)
	if isAdminPath(r) {
		if _, ok := core.AdminFromContext(r.Context()); ok {
			s.renderAdmin(w, r, statusCode, "", "Error", body)
			return
		}
	}
	s.renderPublic(w, r, statusCode, "Error", body)
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

func isAdminPath(r *http.Request) bool {
	return r.URL.Path == "/admin" || strings.HasPrefix(r.URL.Path, "/admin/")
}
