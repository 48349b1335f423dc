package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/nonprofit/internal/core"
)

// handleCreate saves a new row from the admin editor.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "resource")

	form, err := formValues(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	row, err := s.service.Create(r.Context(), key, form)
	if err != nil {
		s.formFailed(w, r, key, 0, form, err)
		return
	}

	def, _ := s.service.Resource(key)
	setFlash(w, def.Info.Singular+" created.")
	if key == core.KeyBroadcasts {
		redirect(w, r, "/admin/newsletter/preview/"+strconv.FormatInt(row.ID(), 10))
		return
	}
	redirect(w, r, "/admin/"+key)
}

// handleUpdate saves the admin editor over an existing row.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "resource")
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	form, err := formValues(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if _, err := s.service.Update(r.Context(), key, id, form); err != nil {
		s.formFailed(w, r, key, id, form, err)
		return
	}

	def, _ := s.service.Resource(key)
	setFlash(w, def.Info.Singular+" saved.")
	redirect(w, r, "/admin/"+key)
}

// handleDelete removes a row and returns to its list.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "resource")
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.service.Delete(r.Context(), key, id); err != nil {
		s.fail(w, r, err)
		return
	}

	def, _ := s.service.Resource(key)
	setFlash(w, def.Info.Singular+" deleted.")
	redirect(w, r, "/admin/"+key)
}

// formFailed re-renders the editor for validation errors and falls back to
// an error page for anything else.
func (s *Server) formFailed(w http.ResponseWriter, r *http.Request, key string, id int64, form map[string]string, err error) {
	if _, ok := core.AsValidationErrors(err); !ok {
		s.fail(w, r, err)
		return
	}
	def, rerr := s.service.Resource(key)
	if rerr != nil {
		s.fail(w, r, rerr)
		return
	}
	s.renderForm(w, r, http.StatusUnprocessableEntity, def, id, formState(form, err))
}
