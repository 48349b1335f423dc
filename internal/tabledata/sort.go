package tabledata

import "slices"

// Sort returns a sorted copy of records. A nil spec or an empty field
// returns records unchanged. Ties keep their input order.
func Sort[T any](records []T, get Getter[T], spec *SortSpec) []T {
	if spec == nil || spec.Field == "" {
		return records
	}

	out := slices.Clone(records)
	if len(out) < 2 {
		return out
	}

	c := newComparer()
	dir := spec.Dir
	if dir != Desc {
		dir = Asc
	}

	slices.SortStableFunc(out, func(a, b T) int {
		return c.compare(get(a, spec.Field), get(b, spec.Field), dir)
	})
	return out
}
