package tabledata

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Filter returns the records matching the free-text query and every
// non-empty entry of filters.
//
// The query must appear (case-insensitively) in at least one searchable
// field. Each filter entry is matched according to the record's value:
// slices must contain the target, booleans must equal the parsed target,
// anything else must contain the target case-insensitively. Absent values
// never match a non-empty filter.
func Filter[T any](records []T, get Getter[T], query string, filters FilterSpec, searchable []string) []T {
	out := make([]T, 0, len(records))
	if len(records) == 0 {
		return out
	}

	query = strings.ToLower(strings.TrimSpace(query))

	for _, rec := range records {
		if query != "" && !matchesSearch(rec, get, query, searchable) {
			continue
		}
		if !matchesFilters(rec, get, filters) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesSearch[T any](rec T, get Getter[T], query string, searchable []string) bool {
	for _, field := range searchable {
		v := get(rec, field)
		if isNil(v) {
			continue
		}
		if strings.Contains(strings.ToLower(Stringify(v)), query) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](rec T, get Getter[T], filters FilterSpec) bool {
	for field, target := range filters {
		if target == "" {
			continue
		}
		if !matchValue(get(rec, field), target) {
			return false
		}
	}
	return true
}

// matchValue applies the per-type filter rule to a single value.
func matchValue(v any, target string) bool {
	if isNil(v) {
		return false
	}

	switch val := v.(type) {
	case bool:
		return val == strings.EqualFold(strings.TrimSpace(target), "true")
	case []string:
		for _, item := range val {
			if item == target {
				return true
			}
		}
		return false
	case string:
		return containsFold(val, target)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			item := rv.Index(i).Interface()
			if !isNil(item) && Stringify(item) == target {
				return true
			}
		}
		return false
	}

	return containsFold(Stringify(v), target)
}

func containsFold(s, substr string) bool {
	s = strings.ToLower(s)
	substr = strings.ToLower(substr)
	return s == substr || strings.Contains(s, substr)
}

// Stringify renders a value the way list screens search and display it.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(time.RFC3339)
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.Format(time.RFC3339)
	case []string:
		return strings.Join(val, ", ")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

// isNil reports whether v is nil or a nil pointer, map, slice or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
