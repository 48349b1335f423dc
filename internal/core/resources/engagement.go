package resources

import (
	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

const groupEngagement = "Engagement"

var (
	donationFrequencies = []string{"one_time", "monthly"}
	donationStatuses    = []string{"pending", "received", "refunded"}
	volunteerStatuses   = []string{"pending", "contacted", "active", "inactive"}
	broadcastStatuses   = []string{core.BroadcastDraft, core.BroadcastSent}
)

var newestFirst = tabledata.SortSpec{Field: core.ColumnCreatedAt, Dir: tabledata.Desc}

func init() {
	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:         core.KeyDonations,
			Group:       groupEngagement,
			Label:       "Donations",
			Singular:    "Donation",
			Order:       1,
			DefaultSort: newestFirst,
		},
		Fields: []core.FieldSpec{
			{Name: "donor_name", Label: "Donor", Type: core.FieldText, Required: true, MaxLength: 120, Searchable: true, ListColumn: true},
			{Name: "email", Label: "Email", Type: core.FieldEmail, Required: true, Searchable: true, ListColumn: true},
			{Name: "amount", Label: "Amount", Type: core.FieldNumeric, Required: true, ListColumn: true},
			{Name: "frequency", Label: "Frequency", Type: core.FieldEnum, EnumValues: donationFrequencies, Required: true, Filterable: true, ListColumn: true},
			{Name: "program", Label: "Program", Type: core.FieldText, MaxLength: 200, Searchable: true, Filterable: true},
			{Name: "message", Label: "Message", Type: core.FieldLongText, MaxLength: 2000, Searchable: true},
			{Name: "status", Label: "Status", Type: core.FieldEnum, EnumValues: donationStatuses, Default: "pending", Filterable: true, ListColumn: true},
		},
	})

	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:         core.KeyVolunteers,
			Group:       groupEngagement,
			Label:       "Volunteers",
			Singular:    "Volunteer",
			Order:       2,
			DefaultSort: newestFirst,
		},
		Fields: []core.FieldSpec{
			{Name: "name", Label: "Name", Type: core.FieldText, Required: true, MaxLength: 120, Searchable: true, ListColumn: true},
			{Name: "email", Label: "Email", Type: core.FieldEmail, Required: true, Searchable: true, ListColumn: true},
			{Name: "phone", Label: "Phone", Type: core.FieldText, MaxLength: 40},
			{Name: "interests", Label: "Interests", Type: core.FieldList, Filterable: true, ListColumn: true, Help: "Comma separated"},
			{Name: "availability", Label: "Availability", Type: core.FieldText, MaxLength: 200},
			{Name: "message", Label: "Message", Type: core.FieldLongText, MaxLength: 2000, Searchable: true},
			{Name: "status", Label: "Status", Type: core.FieldEnum, EnumValues: volunteerStatuses, Default: "pending", Filterable: true, ListColumn: true},
		},
	})

	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:         core.KeyContactMessages,
			Group:       groupEngagement,
			Label:       "Contact Messages",
			Singular:    "Contact Message",
			Order:       3,
			DefaultSort: newestFirst,
		},
		Fields: []core.FieldSpec{
			{Name: "name", Label: "Name", Type: core.FieldText, Required: true, MaxLength: 120, Searchable: true, ListColumn: true},
			{Name: "email", Label: "Email", Type: core.FieldEmail, Required: true, Searchable: true, ListColumn: true},
			{Name: "subject", Label: "Subject", Type: core.FieldText, MaxLength: 200, Searchable: true, ListColumn: true},
			{Name: "message", Label: "Message", Type: core.FieldLongText, Required: true, MaxLength: 5000, Searchable: true},
			{Name: "read", Label: "Read", Type: core.FieldBool, Filterable: true, ListColumn: true},
		},
	})

	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:         core.KeySubscribers,
			Group:       groupEngagement,
			Label:       "Subscribers",
			Singular:    "Subscriber",
			Order:       4,
			DefaultSort: tabledata.SortSpec{Field: "subscribed_at", Dir: tabledata.Desc},
		},
		Fields: []core.FieldSpec{
			{Name: "email", Label: "Email", Type: core.FieldEmail, Required: true, Unique: true, Searchable: true, ListColumn: true},
			{Name: "name", Label: "Name", Type: core.FieldText, MaxLength: 120, Searchable: true, ListColumn: true},
			{Name: "active", Label: "Active", Type: core.FieldBool, Filterable: true, ListColumn: true},
			{Name: "subscribed_at", Label: "Subscribed", Type: core.FieldDate, ReadOnly: true, ListColumn: true},
			{Name: "unsubscribed_at", Label: "Unsubscribed", Type: core.FieldDate, ReadOnly: true},
		},
	})

	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:         core.KeyBroadcasts,
			Group:       groupEngagement,
			Label:       "Newsletters",
			Singular:    "Newsletter",
			Order:       5,
			DefaultSort: newestFirst,
		},
		Fields: []core.FieldSpec{
			{Name: "subject", Label: "Subject", Type: core.FieldText, Required: true, MaxLength: 200, Searchable: true, ListColumn: true},
			{Name: "body", Label: "Body", Type: core.FieldLongText, Required: true, Searchable: true},
			{Name: "status", Label: "Status", Type: core.FieldEnum, EnumValues: broadcastStatuses, Default: core.BroadcastDraft, ReadOnly: true, Filterable: true, ListColumn: true},
			{Name: "sent_at", Label: "Sent", Type: core.FieldDate, ReadOnly: true, ListColumn: true},
			{Name: "recipient_count", Label: "Recipients", Type: core.FieldInteger, ReadOnly: true, ListColumn: true},
		},
	})
}
