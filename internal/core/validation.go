package core

// validation.go checks submitted forms against a resource's field specs
// before anything is written.
//
// Every field is checked and all problems are returned together, so a form
// can highlight each invalid input at once. Read-only fields are skipped;
// the service derives them.

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

// ValidateForm parses and validates form against def's editable fields.
// It returns the typed values of every editable field.
func ValidateForm(def ResourceDefinition, form map[string]string) (Row, ValidationErrors) {
	values := make(Row, len(def.Fields))
	var errs ValidationErrors

	for _, spec := range def.Fields {
		if spec.ReadOnly {
			continue
		}

		raw := strings.TrimSpace(form[spec.Name])

		if raw == "" && spec.Required && spec.Type != FieldBool {
			errs = append(errs, ValidationError{
				Field:   spec.Name,
				Message: "is required",
			})
			continue
		}

		v, err := ParseValue(spec, raw)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   spec.Name,
				Value:   raw,
				Message: err.Error(),
			})
			continue
		}

		if spec.Required && spec.Type == FieldList && len(v.([]string)) == 0 {
			errs = append(errs, ValidationError{
				Field:   spec.Name,
				Message: "is required",
			})
			continue
		}

		if raw != "" {
			if err := ValidateCell(raw, spec); err != nil {
				errs = append(errs, ValidationError{
					Field:   spec.Name,
					Value:   raw,
					Message: err.Error(),
				})
				continue
			}
		}

		values[spec.Name] = v
	}

	return values, errs
}

// ValidateCell checks a non-empty raw value against the type-specific rules
// that parsing alone does not cover.
func ValidateCell(raw string, spec FieldSpec) error {
	if spec.MaxLength > 0 && utf8.RuneCountInString(raw) > spec.MaxLength {
		return fmt.Errorf("must be at most %d characters", spec.MaxLength)
	}

	switch spec.Type {
	case FieldEmail:
		if !IsEmail(raw) {
			return fmt.Errorf("invalid email address")
		}

	case FieldURL:
		if !IsHTTPURL(raw) {
			return fmt.Errorf("invalid link (must start with http:// or https://)")
		}

	case FieldEnum:
		if len(spec.EnumValues) > 0 {
			for _, ev := range spec.EnumValues {
				if strings.EqualFold(ev, raw) {
					return nil
				}
			}
			return fmt.Errorf("must be one of: %s", strings.Join(spec.EnumValues, ", "))
		}
	}
	return nil
}

// IsEmail reports whether s is a bare email address.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	if addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// IsHTTPURL reports whether s is an absolute http(s) URL with a host.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
