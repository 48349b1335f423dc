package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/web/templates"
)

func (s *Server) handleComposePage(w http.ResponseWriter, r *http.Request) {
	s.renderAdmin(w, r, http.StatusOK, core.KeyBroadcasts, "Compose newsletter", templates.ComposePage(templates.FormState{}))
}

// handleCompose stores a draft and moves on to its preview.
func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	draft, err := s.service.DraftBroadcast(r.Context(), form["subject"], form["body"])
	if err != nil {
		if _, ok := core.AsValidationErrors(err); !ok {
			s.fail(w, r, err)
			return
		}
		s.renderAdmin(w, r, http.StatusUnprocessableEntity, core.KeyBroadcasts, "Compose newsletter",
			templates.ComposePage(formState(form, err)))
		return
	}

	redirect(w, r, "/admin/newsletter/preview/"+strconv.FormatInt(draft.ID(), 10))
}

// handlePreview shows a draft with its recipient count before sending.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	preview, err := s.service.PreviewBroadcast(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderAdmin(w, r, http.StatusOK, core.KeyBroadcasts, "Preview newsletter", templates.PreviewPage(preview))
}

// handleSend marks a draft as sent. Sending twice answers 409.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sent, err := s.service.SendBroadcast(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	setFlash(w, "Newsletter sent to "+strconv.FormatInt(sent.Int("recipient_count"), 10)+" subscribers.")
	redirect(w, r, "/admin/"+core.KeyBroadcasts)
}
