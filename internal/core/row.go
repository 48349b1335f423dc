package core

import (
	"strconv"
	"time"

	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

// Row represents a single record as column/value pairs.
//
// Values are normalized by the stores to: string, bool, int64, float64,
// time.Time, []string or nil.
type Row map[string]any

// rowGetter adapts Row to the table processor.
var rowGetter tabledata.Getter[Row] = tabledata.MapGetter[Row]

// ID returns the row's primary key, or 0 if absent.
func (r Row) ID() int64 {
	switch v := r[ColumnID].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		id, _ := strconv.ParseInt(v, 10, 64)
		return id
	}
	return 0
}

// String returns the value of key rendered as text.
func (r Row) String(key string) string {
	return tabledata.Stringify(r[key])
}

// Bool returns the value of key as a bool (false if absent).
func (r Row) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Float returns the value of key as a float64 (0 if absent).
func (r Row) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// Int returns the value of key as an int64 (0 if absent).
func (r Row) Int(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Time returns the value of key as a time (zero if absent).
func (r Row) Time(key string) time.Time {
	if t, ok := r[key].(time.Time); ok {
		return t
	}
	return time.Time{}
}

// Strings returns the value of key as a string list.
func (r Row) Strings(key string) []string {
	if v, ok := r[key].([]string); ok {
		return v
	}
	return nil
}

// Clone returns a shallow copy with list values copied.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		out[k] = v
	}
	return out
}
