// This file contains shared request parsing and rendering helpers.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/logging"
	"github.com/JonMunkholm/nonprofit/internal/web/templates"
)

const (
	// maxFormSize bounds urlencoded and JSON request bodies (1MB).
	maxFormSize = 1 << 20

	flashCookie = "nonprofit_flash"
)

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseListQuery reads search, filter[field], sort, dir, page and size.
// Unknown fields and bad values are left for the service to ignore.
func parseListQuery(r *http.Request) core.ListQuery {
	q := r.URL.Query()
	lq := core.ListQuery{
		Search: strings.TrimSpace(q.Get("search")),
		Sort:   q.Get("sort"),
		Dir:    q.Get("dir"),
		Page:   parseIntParam(r, "page", 1),
		Size:   parseIntParam(r, "size", 0),
	}

	for key, values := range q {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
			continue
		}
		field := key[len("filter[") : len(key)-1]
		if field == "" || len(values) == 0 || values[0] == "" {
			continue
		}
		if lq.Filters == nil {
			lq.Filters = make(map[string]string)
		}
		lq.Filters[field] = values[0]
	}
	return lq
}

// parseID reads the {id} route parameter. A malformed id is a not-found.
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("id %q: %w", raw, core.ErrNotFound)
	}
	return id, nil
}

// formValues parses a urlencoded POST body. When a key repeats, the last
// value wins; checkboxes post a hidden "false" before the box itself.
func formValues(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}

	form := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			form[key] = values[len(values)-1]
		}
	}
	return form, nil
}

// jsonForm decodes a JSON object body into the raw string form the service
// validates. Lists become comma-separated text.
func jsonForm(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	var body map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormSize))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		if err == io.EOF {
			return nil, core.ValidationErrors{{Message: "request body is empty"}}
		}
		return nil, core.ValidationErrors{{Message: "request body is not a JSON object"}}
	}

	form := make(map[string]string, len(body))
	for key, v := range body {
		form[key] = jsonText(v)
	}
	return form, nil
}

func jsonText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, jsonText(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// formState turns a failed submission into the state a form re-renders.
func formState(form map[string]string, err error) templates.FormState {
	state := templates.FormState{Values: form}
	if verrs, ok := core.AsValidationErrors(err); ok {
		state.Errors = verrs.ByField()
		state.Message = "Please correct the highlighted fields."
	} else {
		state.Message = core.FormatUserError(err)
	}
	return state
}

// render writes a component with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// renderPublic renders body inside the public layout.
func (s *Server) renderPublic(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	ctx := templ.WithChildren(r.Context(), body)
	render(w, r.WithContext(ctx), status, templates.PublicLayout(s.site, title, popFlash(w, r)))
}

// renderAdmin renders body inside the admin layout. active is the resource
// key highlighted in the navigation.
func (s *Server) renderAdmin(w http.ResponseWriter, r *http.Request, status int, active, title string, body templ.Component) {
	admin, _ := core.AdminFromContext(r.Context())
	nav := templates.AdminNav{
		Admin:  admin,
		Active: active,
		Groups: s.service.ListResourcesByGroup(),
		Order:  core.Groups(),
	}
	ctx := templ.WithChildren(r.Context(), body)
	render(w, r.WithContext(ctx), status, templates.AdminLayout(s.site, nav, title, popFlash(w, r)))
}

// setFlash stores a notice for the next page the client loads.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending notice, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *templates.Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:    flashCookie,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})

	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil || msg == "" {
		return nil
	}
	return &templates.Flash{Kind: "success", Message: msg}
}

// redirect sends a 303 so a refreshed page does not resubmit a form.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
