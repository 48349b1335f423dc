package web

import (
	"net/http"

	"github.com/JonMunkholm/nonprofit/internal/core"
)

// handleAuditLog renders the audit log as a read-only admin table with
// action, severity and admin filters.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	s.renderList(w, r, core.KeyAuditLog, "/admin/audit-log")
}

// handleAuditExport downloads the filtered audit log as CSV.
func (s *Server) handleAuditExport(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, core.KeyAuditLog)
}
