// Package memory provides an in-process core.Store.
//
// It backs tests and the database-free demo mode. Data lives only as long
// as the process.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

// Store is a mutex-guarded map of tables. The zero value is not usable;
// call New.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*table
}

type table struct {
	nextID int64
	rows   map[int64]core.Row
}

// New creates an empty store.
func New() *Store {
	return &Store{tables: make(map[string]*table)}
}

var _ core.Store = (*Store)(nil)

// tableFor returns the table of def, creating it. Callers hold s.mu.
func (s *Store) tableFor(def core.ResourceDefinition) *table {
	t, ok := s.tables[def.Info.Table]
	if !ok {
		t = &table{rows: make(map[int64]core.Row)}
		s.tables[def.Info.Table] = t
	}
	return t
}

// List returns all rows of def ordered by id.
func (s *Store) List(ctx context.Context, def core.ResourceDefinition) ([]core.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[def.Info.Table]
	if !ok {
		return []core.Row{}, nil
	}
	return sortedClones(t.rows, nil), nil
}

// Get returns row id of def.
func (s *Store) Get(ctx context.Context, def core.ResourceDefinition, id int64) (core.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.tables[def.Info.Table]; ok {
		if row, ok := t.rows[id]; ok {
			return row.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%s %d: %w", def.Info.Table, id, core.ErrNotFound)
}

// FindBy returns the rows of def whose field equals value, ordered by id.
func (s *Store) FindBy(ctx context.Context, def core.ResourceDefinition, field string, value any) ([]core.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !def.HasField(field) {
		return nil, fmt.Errorf("find %s by %q: unknown column", def.Info.Table, field)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[def.Info.Table]
	if !ok {
		return []core.Row{}, nil
	}
	return sortedClones(t.rows, func(r core.Row) bool {
		return equalValues(r[field], value)
	}), nil
}

// Insert stores values as a new row and returns it with its id.
func (s *Store) Insert(ctx context.Context, def core.ResourceDefinition, values core.Row) (core.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tableFor(def)
	t.nextID++
	id := t.nextID

	row := make(core.Row, len(def.Fields)+3)
	for _, f := range def.Fields {
		row[f.Name] = nil
	}
	row[core.ColumnCreatedAt] = nil
	row[core.ColumnUpdatedAt] = nil
	for k, v := range values.Clone() {
		if def.HasField(k) && k != core.ColumnID {
			row[k] = v
		}
	}
	row[core.ColumnID] = id

	t.rows[id] = row
	return row.Clone(), nil
}

// Update overwrites the given columns of row id and returns the result.
func (s *Store) Update(ctx context.Context, def core.ResourceDefinition, id int64, values core.Row) (core.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tableFor(def)
	row, ok := t.rows[id]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", def.Info.Table, id, core.ErrNotFound)
	}

	for k, v := range values.Clone() {
		if def.HasField(k) && k != core.ColumnID {
			row[k] = v
		}
	}
	return row.Clone(), nil
}

// Delete removes row id.
func (s *Store) Delete(ctx context.Context, def core.ResourceDefinition, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tableFor(def)
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%s %d: %w", def.Info.Table, id, core.ErrNotFound)
	}
	delete(t.rows, id)
	return nil
}

// Count returns the number of rows of def.
func (s *Store) Count(ctx context.Context, def core.ResourceDefinition) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.tables[def.Info.Table]; ok {
		return int64(len(t.rows)), nil
	}
	return 0, nil
}

// sortedClones copies the rows accepted by keep (all when nil) in id order.
func sortedClones(rows map[int64]core.Row, keep func(core.Row) bool) []core.Row {
	ids := make([]int64, 0, len(rows))
	for id, r := range rows {
		if keep == nil || keep(r) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]core.Row, len(ids))
	for i, id := range ids {
		out[i] = rows[id].Clone()
	}
	return out
}

// equalValues compares a stored value with a lookup value the way a SQL
// equality would: nil matches only nil, times compare by instant and
// everything else by its text form.
func equalValues(stored, want any) bool {
	if stored == nil || want == nil {
		return stored == nil && want == nil
	}
	if a, ok := stored.(time.Time); ok {
		if b, ok := want.(time.Time); ok {
			return a.Equal(b)
		}
	}
	return tabledata.Stringify(stored) == tabledata.Stringify(want)
}
