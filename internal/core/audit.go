package core

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionCreate        AuditAction = "create"
	ActionUpdate        AuditAction = "update"
	ActionDelete        AuditAction = "delete"
	ActionBroadcastSend AuditAction = "broadcast_send"
	ActionLogin         AuditAction = "login"
	ActionLoginFailed   AuditAction = "login_failed"
	ActionLogout        AuditAction = "logout"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow      AuditSeverity = "low"
	SeverityMedium   AuditSeverity = "medium"
	SeverityHigh     AuditSeverity = "high"
	SeverityCritical AuditSeverity = "critical"
)

// AuditLogParams contains parameters for creating an audit log entry.
// Actor, IP and user agent are taken from the request context.
type AuditLogParams struct {
	Action   AuditAction
	Resource string
	RecordID int64
	Summary  string
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionDelete, ActionLoginFailed:
		return SeverityHigh
	case ActionBroadcastSend:
		return SeverityCritical
	case ActionLogin, ActionLogout:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// LogAudit records an admin action in the audit log resource.
//
// Failures are logged and swallowed: an audit problem never fails the
// action being audited. Nothing is written when no audit_log resource is
// registered.
func (s *Service) LogAudit(ctx context.Context, params AuditLogParams) {
	def, ok := Get(KeyAuditLog)
	if !ok {
		return
	}

	admin, _ := AdminFromContext(ctx)
	now := s.timestamp()

	entry := Row{
		"action":     string(params.Action),
		"severity":   string(determineSeverity(params.Action)),
		"resource":   params.Resource,
		"record_id":  nil,
		"admin":      nilIfEmpty(admin),
		"ip_address": nilIfEmpty(GetIPAddressFromContext(ctx)),
		"user_agent": nilIfEmpty(GetUserAgentFromContext(ctx)),
		"summary":    nilIfEmpty(params.Summary),
	}
	entry[ColumnCreatedAt] = now
	entry[ColumnUpdatedAt] = now
	if params.RecordID != 0 {
		entry["record_id"] = params.RecordID
	}

	if _, err := s.store.Insert(ctx, def, entry); err != nil {
		slog.Error("failed to write audit entry",
			"action", params.Action,
			"resource", params.Resource,
			"record_id", params.RecordID,
			"error", err,
		)
	}
}

// changedFields lists the fields whose value differs between two rows.
func changedFields(def ResourceDefinition, before, after Row) []string {
	var changed []string
	for _, f := range def.Fields {
		if FormatValue(f, before[f.Name]) != FormatValue(f, after[f.Name]) {
			changed = append(changed, f.Name)
		}
	}
	sort.Strings(changed)
	return changed
}

// describeRow returns a short label for audit summaries.
func describeRow(def ResourceDefinition, row Row) string {
	for _, name := range []string{"title", "name", "subject", "email", "donor_name"} {
		if def.HasField(name) {
			if v := row.String(name); v != "" {
				return v
			}
		}
	}
	return ""
}

func summarizeChanges(changed []string) string {
	if len(changed) == 0 {
		return "no changes"
	}
	return "changed: " + strings.Join(changed, ", ")
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
