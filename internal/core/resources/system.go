package resources

import (
	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

var auditActions = []string{
	string(core.ActionCreate),
	string(core.ActionUpdate),
	string(core.ActionDelete),
	string(core.ActionBroadcastSend),
	string(core.ActionLogin),
	string(core.ActionLoginFailed),
	string(core.ActionLogout),
}

var auditSeverities = []string{
	string(core.SeverityLow),
	string(core.SeverityMedium),
	string(core.SeverityHigh),
	string(core.SeverityCritical),
}

func init() {
	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:         core.KeyAuditLog,
			Group:       "System",
			Label:       "Audit Log",
			Singular:    "Audit Entry",
			DefaultSort: tabledata.SortSpec{Field: core.ColumnCreatedAt, Dir: tabledata.Desc},
			ReadOnly:    true,
		},
		Fields: []core.FieldSpec{
			{Name: "action", Label: "Action", Type: core.FieldEnum, EnumValues: auditActions, Filterable: true, ListColumn: true},
			{Name: "severity", Label: "Severity", Type: core.FieldEnum, EnumValues: auditSeverities, Filterable: true, ListColumn: true},
			{Name: "resource", Label: "Resource", Type: core.FieldText, Searchable: true, Filterable: true, ListColumn: true},
			{Name: "record_id", Label: "Record", Type: core.FieldInteger, ListColumn: true},
			{Name: "admin", Label: "Admin", Type: core.FieldEmail, Searchable: true, Filterable: true, ListColumn: true},
			{Name: "ip_address", Label: "IP address", Type: core.FieldText, Searchable: true},
			{Name: "user_agent", Label: "User agent", Type: core.FieldText},
			{Name: "summary", Label: "Summary", Type: core.FieldText, Searchable: true, ListColumn: true},
		},
	})
}
