package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/logging"
	"github.com/JonMunkholm/nonprofit/internal/web/templates"
)

// handleDashboard renders the admin landing page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderAdmin(w, r, http.StatusOK, "", "Dashboard", templates.DashboardPage(stats))
}

// handleList renders the admin table of a resource.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.renderList(w, r, chi.URLParam(r, "resource"), "")
}

// renderList renders the table of key at path; an empty path means
// /admin/{key}.
func (s *Server) renderList(w http.ResponseWriter, r *http.Request, key, path string) {
	def, err := s.service.Resource(key)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if path == "" {
		path = "/admin/" + key
	}

	q := parseListQuery(r)
	page, err := s.service.List(r.Context(), key, q)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.renderAdmin(w, r, http.StatusOK, key, def.Info.Label, templates.ListPage(templates.ListView{
		Def:   def,
		Page:  page,
		Query: q,
		Path:  path,
	}))
}

// handleNew renders an empty editor with field defaults filled in.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	def, err := s.service.Resource(chi.URLParam(r, "resource"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if def.Info.ReadOnly {
		s.fail(w, r, core.ErrReadOnly)
		return
	}

	values := make(map[string]string)
	for _, f := range def.Fields {
		if f.Default != "" {
			values[f.Name] = f.Default
		}
	}
	s.renderForm(w, r, http.StatusOK, def, 0, templates.FormState{Values: values})
}

// handleEdit renders the editor for an existing row.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "resource")
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	def, err := s.service.Resource(key)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if def.Info.ReadOnly {
		s.fail(w, r, core.ErrReadOnly)
		return
	}

	row, err := s.service.Get(r.Context(), key, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderForm(w, r, http.StatusOK, def, id, templates.FormState{Values: core.FormValues(def, row)})
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, def core.ResourceDefinition, id int64, state templates.FormState) {
	title := "New " + def.Info.Singular
	if id != 0 {
		title = "Edit " + def.Info.Singular
	}
	s.renderAdmin(w, r, status, def.Info.Key, title, templates.FormPage(templates.FormView{
		Def:   def,
		ID:    id,
		State: state,
	}))
}

// handleExport downloads the filtered, sorted list of a resource as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, chi.URLParam(r, "resource"))
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, key string) {
	if _, err := s.service.Resource(key); err != nil {
		s.fail(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", key, time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	n, err := s.service.Export(r.Context(), key, parseListQuery(r), w)
	if err != nil {
		// Headers and part of the body may already be written.
		logging.FromContext(r.Context()).Error("export failed", "resource", key, "error", err)
		return
	}
	logging.FromContext(r.Context()).Info("exported resource", "resource", key, "rows", n)
}
