package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

// List returns one page of a resource's rows for the admin table.
//
// Search runs over the resource's searchable fields. Filters on fields that
// are not filterable are dropped, and an unknown sort column falls back to
// the resource's default sort.
func (s *Service) List(ctx context.Context, key string, q ListQuery) (tabledata.Page[Row], error) {
	def, err := s.Resource(key)
	if err != nil {
		return tabledata.Page[Row]{}, err
	}

	rows, err := s.store.List(ctx, def)
	if err != nil {
		return tabledata.Page[Row]{}, fmt.Errorf("list %s: %w", key, err)
	}

	return tabledata.Apply(rows, rowGetter, buildQuery(def, q)), nil
}

// Count returns the number of rows of key.
func (s *Service) Count(ctx context.Context, key string) (int64, error) {
	def, err := s.Resource(key)
	if err != nil {
		return 0, err
	}
	n, err := s.store.Count(ctx, def)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", key, err)
	}
	return n, nil
}

// buildQuery turns request parameters into a processor query, keeping only
// what the resource allows.
func buildQuery(def ResourceDefinition, q ListQuery) tabledata.Query {
	filters := make(tabledata.FilterSpec)
	for field, value := range q.Filters {
		spec, ok := def.Field(field)
		if !ok || !spec.Filterable || value == "" {
			continue
		}
		filters[field] = value
	}

	var sort *tabledata.SortSpec
	if q.Sort != "" && def.HasField(q.Sort) {
		sort = &tabledata.SortSpec{Field: q.Sort, Dir: tabledata.ParseDirection(q.Dir)}
	} else if def.Info.DefaultSort.Field != "" {
		ds := def.Info.DefaultSort
		sort = &ds
	}

	size := q.Size
	if size < 1 {
		size = DefaultListSize
	}
	if size > MaxListSize {
		size = MaxListSize
	}

	return tabledata.Query{
		Search:     q.Search,
		Searchable: def.SearchableFields(),
		Filters:    filters,
		Sort:       sort,
		Page:       tabledata.PageSpec{Page: q.Page, Size: size},
	}
}

// Get returns a single row by id.
func (s *Service) Get(ctx context.Context, key string, id int64) (Row, error) {
	def, err := s.Resource(key)
	if err != nil {
		return nil, err
	}

	row, err := s.store.Get(ctx, def, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", key, id, err)
	}
	return row, nil
}

// FindBySlug returns the row of key whose slug matches.
func (s *Service) FindBySlug(ctx context.Context, key, slug string) (Row, error) {
	def, err := s.Resource(key)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.FindBy(ctx, def, "slug", slug)
	if err != nil {
		return nil, fmt.Errorf("find %s %q: %w", key, slug, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("find %s %q: %w", key, slug, ErrNotFound)
	}
	return rows[0], nil
}

// isPublic reports whether a row may be shown on the public site.
func isPublic(def ResourceDefinition, row Row) bool {
	if def.Info.PublishedField == "" {
		return true
	}
	return row.Bool(def.Info.PublishedField)
}

// publicRows returns the visible rows of key in default order.
func (s *Service) publicRows(ctx context.Context, key string) (ResourceDefinition, []Row, error) {
	def, err := s.Resource(key)
	if err != nil {
		return def, nil, err
	}

	rows, err := s.store.List(ctx, def)
	if err != nil {
		return def, nil, fmt.Errorf("list %s: %w", key, err)
	}

	visible := make([]Row, 0, len(rows))
	for _, r := range rows {
		if isPublic(def, r) {
			visible = append(visible, r)
		}
	}

	if def.Info.DefaultSort.Field != "" {
		ds := def.Info.DefaultSort
		visible = tabledata.Sort(visible, rowGetter, &ds)
	}
	return def, visible, nil
}

// Published returns a page of the publicly visible rows of key.
func (s *Service) Published(ctx context.Context, key string, q ListQuery) (tabledata.Page[Row], error) {
	def, rows, err := s.publicRows(ctx, key)
	if err != nil {
		return tabledata.Page[Row]{}, err
	}

	query := buildQuery(def, q)
	if q.Sort == "" {
		query.Sort = nil // publicRows already applied the default order
	}
	return tabledata.Apply(rows, rowGetter, query), nil
}

// PublishedBySlug returns a visible row by slug. Unpublished rows are
// reported as not found.
func (s *Service) PublishedBySlug(ctx context.Context, key, slug string) (Row, error) {
	def, err := s.Resource(key)
	if err != nil {
		return nil, err
	}

	row, err := s.FindBySlug(ctx, key, slug)
	if err != nil {
		return nil, err
	}
	if !isPublic(def, row) {
		return nil, fmt.Errorf("find %s %q: %w", key, slug, ErrNotFound)
	}
	return row, nil
}

// Latest returns up to n visible rows of key in default order.
func (s *Service) Latest(ctx context.Context, key string, n int) ([]Row, error) {
	_, rows, err := s.publicRows(ctx, key)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

// UpcomingEvents returns up to n published events that have not ended,
// soonest first. n <= 0 returns all of them.
func (s *Service) UpcomingEvents(ctx context.Context, n int) ([]Row, error) {
	_, rows, err := s.publicRows(ctx, KeyEvents)
	if err != nil {
		return nil, err
	}

	now := s.now()
	upcoming := make([]Row, 0, len(rows))
	for _, r := range rows {
		end := r.Time("ends_at")
		if end.IsZero() {
			end = r.Time("starts_at")
		}
		if !end.IsZero() && end.Before(now) {
			continue
		}
		upcoming = append(upcoming, r)
	}

	upcoming = tabledata.Sort(upcoming, rowGetter, &tabledata.SortSpec{Field: "starts_at", Dir: tabledata.Asc})
	if n > 0 && len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming, nil
}

// PastEvents returns published events that have already ended, most
// recent first.
func (s *Service) PastEvents(ctx context.Context) ([]Row, error) {
	_, rows, err := s.publicRows(ctx, KeyEvents)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var past []Row
	for _, r := range rows {
		end := r.Time("ends_at")
		if end.IsZero() {
			end = r.Time("starts_at")
		}
		if !end.IsZero() && end.Before(now) {
			past = append(past, r)
		}
	}
	return tabledata.Sort(past, rowGetter, &tabledata.SortSpec{Field: "starts_at", Dir: tabledata.Desc}), nil
}
