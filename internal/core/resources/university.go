package resources

import (
	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

const groupUniversity = "University"

var courseLevels = []string{"beginner", "intermediate", "advanced"}

func init() {
	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:            core.KeyCourses,
			Group:          groupUniversity,
			Label:          "Courses",
			Singular:       "Course",
			Order:          1,
			DefaultSort:    tabledata.SortSpec{Field: "starts_on", Dir: tabledata.Asc},
			PublishedField: "published",
		},
		Fields: []core.FieldSpec{
			{Name: "title", Label: "Title", Type: core.FieldText, Required: true, MaxLength: 200, Searchable: true, ListColumn: true},
			{Name: "slug", Label: "Slug", Type: core.FieldText, MaxLength: core.MaxSlugLength, Help: "Leave blank to generate from the title"},
			{Name: "code", Label: "Course code", Type: core.FieldText, MaxLength: 20, Searchable: true, ListColumn: true},
			{Name: "description", Label: "Description", Type: core.FieldLongText, Searchable: true},
			{Name: "level", Label: "Level", Type: core.FieldEnum, EnumValues: courseLevels, Filterable: true, ListColumn: true},
			{Name: "instructor", Label: "Instructor", Type: core.FieldText, MaxLength: 120, Searchable: true, Filterable: true, ListColumn: true},
			{Name: "starts_on", Label: "Start date", Type: core.FieldDate, ListColumn: true},
			{Name: "duration_weeks", Label: "Duration (weeks)", Type: core.FieldInteger},
			{Name: "enrollment_url", Label: "Enrollment link", Type: core.FieldURL},
			{Name: "published", Label: "Published", Type: core.FieldBool, Filterable: true, ListColumn: true},
		},
		SlugFrom: "title",
	})

	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:            core.KeyFaculty,
			Group:          groupUniversity,
			Label:          "Faculty",
			Singular:       "Faculty Member",
			Order:          2,
			DefaultSort:    tabledata.SortSpec{Field: "display_order", Dir: tabledata.Asc},
			PublishedField: "published",
		},
		Fields: []core.FieldSpec{
			{Name: "name", Label: "Name", Type: core.FieldText, Required: true, MaxLength: 120, Searchable: true, ListColumn: true},
			{Name: "title", Label: "Title", Type: core.FieldText, MaxLength: 120, Searchable: true, ListColumn: true},
			{Name: "department", Label: "Department", Type: core.FieldText, MaxLength: 120, Searchable: true, Filterable: true, ListColumn: true},
			{Name: "bio", Label: "Bio", Type: core.FieldLongText, Searchable: true},
			{Name: "email", Label: "Email", Type: core.FieldEmail},
			{Name: "photo_url", Label: "Photo URL", Type: core.FieldURL},
			{Name: "display_order", Label: "Display order", Type: core.FieldInteger, Default: "0"},
			{Name: "published", Label: "Published", Type: core.FieldBool, Filterable: true, ListColumn: true},
		},
	})
}
