package tabledata

import (
	"cmp"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// dateLayouts are the string forms recognised as dates when one side of a
// comparison is a time value.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// comparer holds the collator used for string comparison. Collators keep
// internal buffers, so each sort gets its own comparer.
type comparer struct {
	col *collate.Collator
}

func newComparer() *comparer {
	return &comparer{col: collate.New(language.English)}
}

// Compare orders two field values the way list screens sort them.
//
// Rules are applied in order and the first that fits both values decides:
// absent values first (ascending) or last (descending), strings by locale
// collation, dates by instant, numbers (including numeric strings) by
// value, false before true, otherwise equal.
func Compare(a, b any, dir Direction) int {
	return newComparer().compare(a, b, dir)
}

func (c *comparer) compare(a, b any, dir Direction) int {
	aNil, bNil := isNil(a), isNil(b)
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		if dir == Desc {
			return 1
		}
		return -1
	case bNil:
		if dir == Desc {
			return -1
		}
		return 1
	}

	result := c.compareValues(a, b)
	if dir == Desc {
		return -result
	}
	return result
}

func (c *comparer) compareValues(a, b any) int {
	if as, ok := asString(a); ok {
		if bs, ok := asString(b); ok {
			return c.col.CompareString(as, bs)
		}
	}

	if at, ok := asTime(a); ok {
		if bt, ok := asTime(b); ok {
			return at.Compare(bt)
		}
	}

	if an, ok := asNumber(a); ok {
		if bn, ok := asNumber(b); ok {
			return cmp.Compare(an, bn)
		}
	}

	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}

	if reflect.TypeOf(a) == reflect.TypeOf(b) {
		return strings.Compare(Stringify(a), Stringify(b))
	}
	return 0
}

// asString accepts string and named string types.
func asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// asTime accepts time values and strings in one of dateLayouts.
func asTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}
		return *val, true
	case string:
		return parseDate(val)
	}
	return time.Time{}, false
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// asNumber coerces v to a finite float. Blank strings count as zero,
// booleans as 0 and 1, and times as Unix milliseconds.
func asNumber(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	case time.Time:
		return float64(val.UnixMilli()), true
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		default:
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
