package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/nonprofit/internal/core"
)

// ResourceResponse describes a resource to API clients.
type ResourceResponse struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Singular string          `json:"singular"`
	Group    string          `json:"group"`
	ReadOnly bool            `json:"readOnly"`
	Fields   []FieldResponse `json:"fields"`
}

// FieldResponse describes one field of a resource.
type FieldResponse struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Type       string   `json:"type"`
	Required   bool     `json:"required,omitempty"`
	Enum       []string `json:"enum,omitempty"`
	Searchable bool     `json:"searchable,omitempty"`
	Filterable bool     `json:"filterable,omitempty"`
	ReadOnly   bool     `json:"readOnly,omitempty"`
}

// ListResponse is one page of an API list.
type ListResponse struct {
	Items      []core.Row `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.Count(r.Context(), core.KeyArticles); err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAPIResources lists every registered resource with its fields.
func (s *Server) handleAPIResources(w http.ResponseWriter, r *http.Request) {
	defs := core.All()
	out := make([]ResourceResponse, len(defs))
	for i, def := range defs {
		fields := make([]FieldResponse, len(def.Fields))
		for j, f := range def.Fields {
			fields[j] = FieldResponse{
				Name:       f.Name,
				Label:      f.Label,
				Type:       f.Type.String(),
				Required:   f.Required,
				Enum:       f.EnumValues,
				Searchable: f.Searchable,
				Filterable: f.Filterable,
				ReadOnly:   f.ReadOnly,
			}
		}
		out[i] = ResourceResponse{
			Key:      def.Info.Key,
			Label:    def.Info.Label,
			Singular: def.Info.Singular,
			Group:    def.Info.Group,
			ReadOnly: def.Info.ReadOnly,
			Fields:   fields,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	counts := make(map[string]int64, len(stats.Resources))
	for _, rs := range stats.Resources {
		counts[rs.Info.Key] = rs.Count
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"resources":         counts,
		"activeSubscribers": stats.ActiveSubscribers,
		"pendingDonations":  stats.PendingDonations,
		"donationTotal":     stats.DonationTotal,
		"pendingVolunteers": stats.PendingVolunteers,
		"unreadMessages":    stats.UnreadMessages,
		"upcomingEvents":    stats.UpcomingEvents,
	})
}

// handleAPIList returns a filtered, sorted page of a resource. It takes the
// same query parameters as the admin table.
func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	page, err := s.service.List(r.Context(), chi.URLParam(r, "resource"), parseListQuery(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	items := page.Items
	if items == nil {
		items = []core.Row{}
	}
	writeJSON(w, http.StatusOK, ListResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	})
}

func (s *Server) handleAPIGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	row, err := s.service.Get(r.Context(), chi.URLParam(r, "resource"), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleAPICreate(w http.ResponseWriter, r *http.Request) {
	form, err := jsonForm(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	row, err := s.service.Create(r.Context(), chi.URLParam(r, "resource"), form)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

// handleAPIUpdate applies a partial update: fields absent from the body
// keep their value.
func (s *Server) handleAPIUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	form, err := jsonForm(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	row, err := s.service.Update(r.Context(), chi.URLParam(r, "resource"), id, form)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleAPIDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.service.Delete(r.Context(), chi.URLParam(r, "resource"), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
