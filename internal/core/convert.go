package core

// convert.go turns submitted form strings into typed row values.
//
// These functions handle the messy reality of hand-typed input:
//   - Browser date pickers, ISO dates and US-style dates
//   - Currency symbols and thousand separators in amounts
//   - Checkbox values ("on") and yes/no answers
//   - Comma- or newline-separated lists
//
// Blank input converts to nil (or false / an empty list for bools and
// lists) so the store writes NULLs.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// ParseValue converts a raw form value into the typed value for spec.
func ParseValue(spec FieldSpec, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch spec.Type {
	case FieldBool:
		return ParseBool(raw)
	case FieldList:
		return ParseList(raw), nil
	}

	if raw == "" {
		return nil, nil
	}

	switch spec.Type {
	case FieldDate:
		t, ok := ParseDate(raw)
		if !ok {
			return nil, fmt.Errorf("invalid date %q", raw)
		}
		return t, nil

	case FieldNumeric:
		f, ok := ParseNumber(raw)
		if !ok {
			return nil, fmt.Errorf("invalid number %q", raw)
		}
		return f, nil

	case FieldInteger:
		i, err := strconv.ParseInt(strings.ReplaceAll(raw, ",", ""), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", raw)
		}
		return i, nil

	case FieldEmail:
		return strings.ToLower(raw), nil

	case FieldEnum:
		for _, ev := range spec.EnumValues {
			if strings.EqualFold(ev, raw) {
				return ev, nil
			}
		}
		return raw, nil

	default:
		return raw, nil
	}
}

// ParseDate parses the date formats accepted by admin forms.
// Dates without a zone are taken as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses an amount, tolerating currency symbols, thousands
// separators and accounting negatives "(12.50)".
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ParseBool accepts checkbox and yes/no style answers. Blank is false.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "f", "no", "n", "0", "off":
		return false, nil
	case "true", "t", "yes", "y", "1", "on":
		return true, nil
	default:
		return false, fmt.Errorf("must be yes/no, true/false, or 1/0")
	}
}

// ParseList splits a comma- or newline-separated list, dropping blanks.
func ParseList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// FormatValue renders a typed value back into its form representation.
func FormatValue(spec FieldSpec, v any) string {
	if v == nil {
		return ""
	}
	switch spec.Type {
	case FieldDate:
		if t, ok := v.(time.Time); ok {
			if t.IsZero() {
				return ""
			}
			return t.UTC().Format("2006-01-02T15:04")
		}
	case FieldList:
		if list, ok := v.([]string); ok {
			return strings.Join(list, ", ")
		}
	case FieldNumeric:
		if f, ok := v.(float64); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case FieldBool:
		if b, ok := v.(bool); ok && b {
			return "true"
		}
		return ""
	}
	return tabledata.Stringify(v)
}
