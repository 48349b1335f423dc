package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testDef = ResourceDefinition{
	Info: ResourceInfo{Key: "tests", Label: "Tests"},
	Fields: []FieldSpec{
		{Name: "title", Type: FieldText, Required: true, MaxLength: 10},
		{Name: "email", Type: FieldEmail},
		{Name: "website", Type: FieldURL},
		{Name: "kind", Type: FieldEnum, EnumValues: []string{"a", "b"}},
		{Name: "amount", Type: FieldNumeric},
		{Name: "tags", Type: FieldList},
		{Name: "visible", Type: FieldBool},
		{Name: "embed_id", Type: FieldText, ReadOnly: true},
	},
}

func TestValidateForm_CollectsEveryError(t *testing.T) {
	form := map[string]string{
		"title":    "",
		"email":    "not-an-email",
		"website":  "ftp://files.example.org",
		"kind":     "c",
		"amount":   "lots",
		"embed_id": "ignored",
	}

	_, errs := ValidateForm(testDef, form)

	want := map[string]string{
		"title":   "is required",
		"email":   "invalid email address",
		"website": "invalid link (must start with http:// or https://)",
		"kind":    "must be one of: a, b",
		"amount":  `invalid number "lots"`,
	}
	if diff := cmp.Diff(want, errs.ByField()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateForm_ValidInput(t *testing.T) {
	form := map[string]string{
		"title":    " Hello ",
		"email":    "Ana@Example.org",
		"website":  "https://example.org/about",
		"kind":     "B",
		"amount":   "$5",
		"tags":     "x, y",
		"visible":  "on",
		"embed_id": "should-not-be-taken",
	}

	values, errs := ValidateForm(testDef, form)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := Row{
		"title":   "Hello",
		"email":   "ana@example.org",
		"website": "https://example.org/about",
		"kind":    "b",
		"amount":  5.0,
		"tags":    []string{"x", "y"},
		"visible": true,
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateForm_BlankOptionalFieldsAreNil(t *testing.T) {
	values, errs := ValidateForm(testDef, map[string]string{"title": "ok"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, name := range []string{"email", "website", "kind", "amount"} {
		v, present := values[name]
		if !present || v != nil {
			t.Errorf("%s = %v (present %v), want nil", name, v, present)
		}
	}
	if values["visible"] != false {
		t.Errorf("visible = %v, want false", values["visible"])
	}
}

func TestValidateForm_MaxLength(t *testing.T) {
	_, errs := ValidateForm(testDef, map[string]string{"title": "Hello world!"})
	if got := errs.ByField()["title"]; got != "must be at most 10 characters" {
		t.Errorf("title error = %q", got)
	}

	// Runes, not bytes.
	_, errs = ValidateForm(testDef, map[string]string{"title": "ééééééééé"})
	if len(errs) != 0 {
		t.Errorf("nine accented letters should fit in 10: %v", errs)
	}
}

func TestValidateForm_RequiredList(t *testing.T) {
	def := ResourceDefinition{Fields: []FieldSpec{{Name: "interests", Type: FieldList, Required: true}}}

	_, errs := ValidateForm(def, map[string]string{"interests": " , ,"})
	if got := errs.ByField()["interests"]; got != "is required" {
		t.Errorf("interests error = %q, want is required", got)
	}
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ana@example.org", true},
		{"first.last+tag@sub.example.co", true},
		{"ana@localhost", false},
		{"Ana <ana@example.org>", false},
		{"@example.org", false},
		{"ana@", false},
		{"plain", false},
	}
	for _, tt := range tests {
		if got := IsEmail(tt.in); got != tt.want {
			t.Errorf("IsEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsHTTPURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.org", true},
		{"http://example.org/path?q=1", true},
		{"ftp://example.org", false},
		{"example.org", false},
		{"https://", false},
		{"javascript:alert(1)", false},
	}
	for _, tt := range tests {
		if got := IsHTTPURL(tt.in); got != tt.want {
			t.Errorf("IsHTTPURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "is required"},
		{Field: "email", Message: "invalid email address"},
	}
	want := "validation failed: title: is required; email: invalid email address"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	ve, ok := AsValidationErrors(error(errs))
	if !ok || len(ve) != 2 {
		t.Errorf("AsValidationErrors() = %v, %v", ve, ok)
	}
}
