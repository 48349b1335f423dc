package web

import (
	"net/http"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/web/templates"
)

func (s *Server) handleContactPage(w http.ResponseWriter, r *http.Request) {
	s.renderPublic(w, r, http.StatusOK, "Contact", templates.ContactPage(s.site, templates.FormState{}))
}

// handleContactSubmit stores a contact message and redirects back to the
// form with a notice. Invalid input re-renders the form with 422.
func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if _, err := s.service.SubmitContact(r.Context(), form); err != nil {
		if _, ok := core.AsValidationErrors(err); !ok {
			s.fail(w, r, err)
			return
		}
		s.renderPublic(w, r, http.StatusUnprocessableEntity, "Contact",
			templates.ContactPage(s.site, formState(form, err)))
		return
	}

	setFlash(w, "Thanks for getting in touch. We will reply soon.")
	redirect(w, r, "/contact")
}

func (s *Server) handleGetInvolved(w http.ResponseWriter, r *http.Request) {
	s.renderGetInvolved(w, r, http.StatusOK, templates.FormState{}, templates.FormState{})
}

// renderGetInvolved renders the donation and volunteer forms with the
// current programs as donation targets.
func (s *Server) renderGetInvolved(w http.ResponseWriter, r *http.Request, status int, donation, volunteer templates.FormState) {
	programs, err := s.service.Latest(r.Context(), core.KeyPrograms, 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPublic(w, r, status, "Get involved", templates.GetInvolvedPage(donation, volunteer, programs))
}

func (s *Server) handleDonate(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if _, err := s.service.SubmitDonation(r.Context(), form); err != nil {
		if _, ok := core.AsValidationErrors(err); !ok {
			s.fail(w, r, err)
			return
		}
		s.renderGetInvolved(w, r, http.StatusUnprocessableEntity, formState(form, err), templates.FormState{})
		return
	}

	setFlash(w, "Thank you for your pledge. We will be in touch with payment details.")
	redirect(w, r, "/get-involved")
}

func (s *Server) handleVolunteer(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if _, err := s.service.SubmitVolunteer(r.Context(), form); err != nil {
		if _, ok := core.AsValidationErrors(err); !ok {
			s.fail(w, r, err)
			return
		}
		s.renderGetInvolved(w, r, http.StatusUnprocessableEntity, templates.FormState{}, formState(form, err))
		return
	}

	setFlash(w, "Thanks for volunteering. Our coordinator will contact you.")
	redirect(w, r, "/get-involved")
}

// handleSubscribe adds an address to the newsletter. Subscribing twice is
// not an error.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if _, err := s.service.Subscribe(r.Context(), form["email"], form["name"]); err != nil {
		s.fail(w, r, err)
		return
	}

	s.renderPublic(w, r, http.StatusOK, "Subscribed",
		templates.MessagePage("You're subscribed", "Thanks for joining our newsletter."))
}
