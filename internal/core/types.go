// Package core provides the business logic for the site and its admin CMS.
// This package has no HTTP dependencies and can be used by any frontend.
package core

import (
	"context"

	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

// FieldType represents the kind of value a resource field holds.
type FieldType int

const (
	FieldText FieldType = iota
	FieldLongText
	FieldEmail
	FieldURL
	FieldEnum
	FieldDate
	FieldNumeric
	FieldInteger
	FieldBool
	FieldList
)

// String returns the name used in JSON metadata and form rendering.
func (t FieldType) String() string {
	switch t {
	case FieldLongText:
		return "longtext"
	case FieldEmail:
		return "email"
	case FieldURL:
		return "url"
	case FieldEnum:
		return "enum"
	case FieldDate:
		return "date"
	case FieldNumeric:
		return "numeric"
	case FieldInteger:
		return "integer"
	case FieldBool:
		return "bool"
	case FieldList:
		return "list"
	default:
		return "text"
	}
}

// FieldSpec defines a single column of a resource.
type FieldSpec struct {
	Name       string    // Column name, also the form field and Row key
	Label      string    // Display name
	Type       FieldType // Value type
	Required   bool      // Must be non-empty on save
	MaxLength  int       // Upper bound for text values (0 = unlimited)
	EnumValues []string  // Allowed values for FieldEnum
	Help       string    // Hint shown under the admin input
	Searchable bool      // Included in free-text search
	Filterable bool      // Exposed as a per-field filter
	ListColumn bool      // Shown in the admin list table
	ReadOnly   bool      // Derived by the service, never taken from forms
	Unique     bool      // No two rows may share a non-empty value
	Default    string    // Raw value applied on create when the field is blank
}

// ResourceInfo contains display information about a resource.
type ResourceInfo struct {
	Key      string // Unique identifier and URL segment: "articles"
	Group    string // Admin navigation group: "Content"
	Label    string // Plural display name: "Articles"
	Singular string // Singular display name: "Article"
	Table    string // Database table name
	Order    int    // Position within the group

	// DefaultSort applies when a list request has no valid sort.
	DefaultSort tabledata.SortSpec

	// PublishedField names the bool field that gates public visibility.
	// Empty means every row is public.
	PublishedField string

	// ReadOnly resources cannot be created or edited from the admin.
	ReadOnly bool
}

// ResourceDefinition contains everything needed to manage a resource.
type ResourceDefinition struct {
	Info   ResourceInfo
	Fields []FieldSpec

	// SlugFrom names the field a "slug" is generated from when the slug is
	// left blank. Empty disables slug generation.
	SlugFrom string

	// VideoURLField names the field holding a YouTube link. When set, the
	// "embed_id" field is derived from it on every save.
	VideoURLField string
}

// Field returns the spec for a field name.
func (d ResourceDefinition) Field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// HasField reports whether name is a field or a system column.
func (d ResourceDefinition) HasField(name string) bool {
	if isSystemColumn(name) {
		return true
	}
	_, ok := d.Field(name)
	return ok
}

// Columns returns the field column names in declaration order.
func (d ResourceDefinition) Columns() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.Name
	}
	return cols
}

// SearchableFields returns the names of fields included in free-text search.
func (d ResourceDefinition) SearchableFields() []string {
	var out []string
	for _, f := range d.Fields {
		if f.Searchable {
			out = append(out, f.Name)
		}
	}
	return out
}

// ListColumns returns the fields shown in admin list tables.
func (d ResourceDefinition) ListColumns() []FieldSpec {
	var out []FieldSpec
	for _, f := range d.Fields {
		if f.ListColumn {
			out = append(out, f)
		}
	}
	return out
}

// FilterableFields returns the fields exposed as list filters.
func (d ResourceDefinition) FilterableFields() []FieldSpec {
	var out []FieldSpec
	for _, f := range d.Fields {
		if f.Filterable {
			out = append(out, f)
		}
	}
	return out
}

// Resource keys the service gives special behavior.
const (
	KeyArticles        = "articles"
	KeyPrograms        = "programs"
	KeyTeamMembers     = "team_members"
	KeyVideos          = "videos"
	KeyCourses         = "courses"
	KeyFaculty         = "faculty"
	KeyEvents          = "events"
	KeyDonations       = "donations"
	KeyVolunteers      = "volunteers"
	KeyContactMessages = "contact_messages"
	KeySubscribers     = "subscribers"
	KeyBroadcasts      = "broadcasts"
	KeyAuditLog        = "audit_log"
)

// System columns present on every resource table.
const (
	ColumnID        = "id"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
)

func isSystemColumn(name string) bool {
	return name == ColumnID || name == ColumnCreatedAt || name == ColumnUpdatedAt
}

// Store persists resource rows.
// Implementations must return ErrNotFound for missing ids.
type Store interface {
	List(ctx context.Context, def ResourceDefinition) ([]Row, error)
	Get(ctx context.Context, def ResourceDefinition, id int64) (Row, error)
	FindBy(ctx context.Context, def ResourceDefinition, field string, value any) ([]Row, error)
	Insert(ctx context.Context, def ResourceDefinition, values Row) (Row, error)
	Update(ctx context.Context, def ResourceDefinition, id int64, values Row) (Row, error)
	Delete(ctx context.Context, def ResourceDefinition, id int64) error
	Count(ctx context.Context, def ResourceDefinition) (int64, error)
}

// VideoInfo is metadata returned by a video lookup.
type VideoInfo struct {
	Title        string
	Author       string
	ThumbnailURL string
}

// VideoLookup fetches metadata for a public video URL.
type VideoLookup interface {
	LookupVideo(ctx context.Context, videoURL string) (VideoInfo, error)
}

// ListQuery carries the list parameters of an admin table request.
type ListQuery struct {
	Search  string
	Filters map[string]string
	Sort    string
	Dir     string
	Page    int
	Size    int
}
