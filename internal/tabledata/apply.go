package tabledata

// DefaultPageSize is used when a query does not set a page size.
const DefaultPageSize = 10

// Apply filters, sorts and paginates records in one pass and returns the
// requested page together with the totals a list screen renders.
func Apply[T any](records []T, get Getter[T], q Query) Page[T] {
	filtered := Filter(records, get, q.Search, q.Filters, q.Searchable)
	sorted := Sort(filtered, get, q.Sort)

	spec := q.Page
	if spec.Size < 1 {
		spec.Size = DefaultPageSize
	}
	if spec.Page < 1 {
		spec.Page = 1
	}

	totalPages := TotalPages(len(sorted), spec.Size)

	return Page[T]{
		Items:      Paginate(sorted, spec),
		Total:      len(sorted),
		Page:       spec.Page,
		PageSize:   spec.Size,
		TotalPages: totalPages,
		Buttons:    PaginationRange(spec.Page, totalPages),
		Sort:       q.Sort,
		Search:     q.Search,
	}
}
