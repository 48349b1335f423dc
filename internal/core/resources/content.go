// Package resources registers the site's resource definitions with the core
// registry. Import it for side effects:
//
//	import _ "github.com/JonMunkholm/nonprofit/internal/core/resources"
package resources

import (
	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

const groupContent = "Content"

var articleCategories = []string{"news", "story", "announcement", "press"}

var programCategories = []string{"education", "health", "community", "environment"}

func init() {
	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:            core.KeyArticles,
			Group:          groupContent,
			Label:          "Articles",
			Singular:       "Article",
			Order:          1,
			DefaultSort:    tabledata.SortSpec{Field: "published_at", Dir: tabledata.Desc},
			PublishedField: "published",
		},
		Fields: []core.FieldSpec{
			{Name: "title", Label: "Title", Type: core.FieldText, Required: true, MaxLength: 200, Searchable: true, ListColumn: true},
			{Name: "slug", Label: "Slug", Type: core.FieldText, MaxLength: core.MaxSlugLength, Help: "Leave blank to generate from the title"},
			{Name: "summary", Label: "Summary", Type: core.FieldLongText, MaxLength: 500, Searchable: true},
			{Name: "body", Label: "Body", Type: core.FieldLongText, Required: true, Searchable: true},
			{Name: "author", Label: "Author", Type: core.FieldText, MaxLength: 120, Searchable: true, Filterable: true, ListColumn: true},
			{Name: "category", Label: "Category", Type: core.FieldEnum, EnumValues: articleCategories, Default: "news", Filterable: true, ListColumn: true},
			{Name: "tags", Label: "Tags", Type: core.FieldList, Filterable: true, Help: "Comma separated"},
			{Name: "image_url", Label: "Image URL", Type: core.FieldURL},
			{Name: "published", Label: "Published", Type: core.FieldBool, Filterable: true, ListColumn: true},
			{Name: "published_at", Label: "Publish date", Type: core.FieldDate, ListColumn: true},
		},
		SlugFrom: "title",
	})

	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:            core.KeyPrograms,
			Group:          groupContent,
			Label:          "Programs",
			Singular:       "Program",
			Order:          2,
			DefaultSort:    tabledata.SortSpec{Field: "display_order", Dir: tabledata.Asc},
			PublishedField: "published",
		},
		Fields: []core.FieldSpec{
			{Name: "title", Label: "Title", Type: core.FieldText, Required: true, MaxLength: 200, Searchable: true, ListColumn: true},
			{Name: "slug", Label: "Slug", Type: core.FieldText, MaxLength: core.MaxSlugLength, Help: "Leave blank to generate from the title"},
			{Name: "summary", Label: "Summary", Type: core.FieldLongText, MaxLength: 500, Searchable: true},
			{Name: "description", Label: "Description", Type: core.FieldLongText, Searchable: true},
			{Name: "category", Label: "Category", Type: core.FieldEnum, EnumValues: programCategories, Filterable: true, ListColumn: true},
			{Name: "image_url", Label: "Image URL", Type: core.FieldURL},
			{Name: "featured", Label: "Featured", Type: core.FieldBool, Filterable: true, ListColumn: true},
			{Name: "display_order", Label: "Display order", Type: core.FieldInteger, Default: "0", ListColumn: true},
			{Name: "published", Label: "Published", Type: core.FieldBool, Filterable: true, ListColumn: true},
		},
		SlugFrom: "title",
	})

	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:            core.KeyTeamMembers,
			Group:          groupContent,
			Label:          "Team Members",
			Singular:       "Team Member",
			Order:          3,
			DefaultSort:    tabledata.SortSpec{Field: "display_order", Dir: tabledata.Asc},
			PublishedField: "published",
		},
		Fields: []core.FieldSpec{
			{Name: "name", Label: "Name", Type: core.FieldText, Required: true, MaxLength: 120, Searchable: true, ListColumn: true},
			{Name: "role", Label: "Role", Type: core.FieldText, MaxLength: 120, Searchable: true, Filterable: true, ListColumn: true},
			{Name: "bio", Label: "Bio", Type: core.FieldLongText, Searchable: true},
			{Name: "photo_url", Label: "Photo URL", Type: core.FieldURL},
			{Name: "email", Label: "Email", Type: core.FieldEmail, Searchable: true},
			{Name: "display_order", Label: "Display order", Type: core.FieldInteger, Default: "0", ListColumn: true},
			{Name: "published", Label: "Published", Type: core.FieldBool, Filterable: true, ListColumn: true},
		},
	})

	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:            core.KeyVideos,
			Group:          groupContent,
			Label:          "Videos",
			Singular:       "Video",
			Order:          4,
			DefaultSort:    tabledata.SortSpec{Field: "published_at", Dir: tabledata.Desc},
			PublishedField: "published",
		},
		Fields: []core.FieldSpec{
			{Name: "title", Label: "Title", Type: core.FieldText, MaxLength: 200, Searchable: true, ListColumn: true, Help: "Leave blank to use the YouTube title"},
			{Name: "video_url", Label: "YouTube link", Type: core.FieldURL, Required: true},
			{Name: "embed_id", Label: "Embed ID", Type: core.FieldText, ReadOnly: true, ListColumn: true},
			{Name: "thumbnail_url", Label: "Thumbnail", Type: core.FieldURL, ReadOnly: true},
			{Name: "description", Label: "Description", Type: core.FieldLongText, Searchable: true},
			{Name: "category", Label: "Category", Type: core.FieldText, MaxLength: 80, Filterable: true, ListColumn: true},
			{Name: "published", Label: "Published", Type: core.FieldBool, Filterable: true, ListColumn: true},
			{Name: "published_at", Label: "Publish date", Type: core.FieldDate, ListColumn: true},
		},
		VideoURLField: "video_url",
	})

	core.Register(core.ResourceDefinition{
		Info: core.ResourceInfo{
			Key:            core.KeyEvents,
			Group:          groupContent,
			Label:          "Events",
			Singular:       "Event",
			Order:          5,
			DefaultSort:    tabledata.SortSpec{Field: "starts_at", Dir: tabledata.Desc},
			PublishedField: "published",
		},
		Fields: []core.FieldSpec{
			{Name: "title", Label: "Title", Type: core.FieldText, Required: true, MaxLength: 200, Searchable: true, ListColumn: true},
			{Name: "slug", Label: "Slug", Type: core.FieldText, MaxLength: core.MaxSlugLength, Help: "Leave blank to generate from the title"},
			{Name: "description", Label: "Description", Type: core.FieldLongText, Searchable: true},
			{Name: "location", Label: "Location", Type: core.FieldText, MaxLength: 200, Searchable: true, Filterable: true, ListColumn: true},
			{Name: "starts_at", Label: "Starts", Type: core.FieldDate, Required: true, ListColumn: true},
			{Name: "ends_at", Label: "Ends", Type: core.FieldDate},
			{Name: "registration_url", Label: "Registration link", Type: core.FieldURL},
			{Name: "published", Label: "Published", Type: core.FieldBool, Filterable: true, ListColumn: true},
		},
		SlugFrom: "title",
	})
}
