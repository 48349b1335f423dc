// Package tabledata filters, sorts and paginates in-memory admin table rows.
//
// Every admin list screen fetches its records once and runs them through
// these functions. All functions are pure: they never mutate their input and
// degrade to empty or default results instead of returning errors.
package tabledata

import "strings"

// Getter reads a named field from a record. It returns nil when the record
// has no such field or the value is absent.
type Getter[T any] func(rec T, field string) any

// MapGetter reads fields from map-shaped records.
func MapGetter[M ~map[string]any](rec M, field string) any {
	if rec == nil {
		return nil
	}
	return rec[field]
}

// FilterSpec maps a field name to the value it must match.
type FilterSpec map[string]string

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection returns Desc for "desc" (any case) and Asc otherwise.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// SortSpec is the single active sort key and direction.
type SortSpec struct {
	Field string    `json:"field"`
	Dir   Direction `json:"dir"`
}

// PageSpec selects a 1-based page of Size items.
type PageSpec struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Query bundles everything a list screen needs to derive one page.
type Query struct {
	Search     string
	Searchable []string
	Filters    FilterSpec
	Sort       *SortSpec
	Page       PageSpec
}

// Page is the result of applying a Query.
type Page[T any] struct {
	Items      []T       `json:"items"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
	Buttons    []int     `json:"buttons"`
	Sort       *SortSpec `json:"sort,omitempty"`
	Search     string    `json:"search,omitempty"`
}
