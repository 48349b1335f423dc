package tabledata

// MaxPageButtons caps the number of page buttons PaginationRange returns.
const MaxPageButtons = 5

// Paginate returns the records on page p of size s: the half-open range
// [(p-1)*s, (p-1)*s+s). Pages outside the data yield an empty slice.
func Paginate[T any](records []T, spec PageSpec) []T {
	if len(records) == 0 || spec.Page < 1 || spec.Size < 1 {
		return []T{}
	}

	start := (spec.Page - 1) * spec.Size
	if start >= len(records) {
		return []T{}
	}
	end := min(start+spec.Size, len(records))

	out := make([]T, end-start)
	copy(out, records[start:end])
	return out
}

// TotalPages returns max(1, ceil(total/size)), so an empty table still
// renders as page 1 of 1.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// PaginationRange returns the page numbers to render as buttons.
//
// At most MaxPageButtons are returned. Short tables show every page;
// otherwise the first and last pages are always shown and the window
// around the current page fills the rest.
func PaginationRange(current, total int) []int {
	if total < 1 {
		total = 1
	}

	if total <= MaxPageButtons {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	switch {
	case current <= 3:
		return []int{1, 2, 3, 4, total}
	case current >= total-2:
		return []int{1, total - 3, total - 2, total - 1, total}
	default:
		return []int{1, current - 1, current, current + 1, total}
	}
}
