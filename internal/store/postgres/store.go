// Package postgres implements core.Store on PostgreSQL using pgx.
//
// Tables are addressed through the resource definitions, so one Store serves
// every registered resource. Column and table names come from the registry
// and are always quoted; values are always bound as parameters.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/nonprofit/internal/core"
)

// Store reads and writes resource rows through a connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an open pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ core.Store = (*Store)(nil)

// List returns all rows of def ordered by id.
func (s *Store) List(ctx context.Context, def core.ResourceDefinition) ([]core.Row, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		selectList(def), quoteIdentifier(def.Info.Table), quoteIdentifier(core.ColumnID))

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", def.Info.Table, err)
	}
	return collect(rows, def)
}

// Get returns row id of def.
func (s *Store) Get(ctx context.Context, def core.ResourceDefinition, id int64) (core.Row, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		selectList(def), quoteIdentifier(def.Info.Table), quoteIdentifier(core.ColumnID))

	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", def.Info.Table, id, err)
	}
	return collectOne(rows, def, id)
}

// FindBy returns the rows of def whose field equals value, ordered by id.
func (s *Store) FindBy(ctx context.Context, def core.ResourceDefinition, field string, value any) ([]core.Row, error) {
	if !def.HasField(field) {
		return nil, fmt.Errorf("find %s by %q: unknown column", def.Info.Table, field)
	}

	query, args := findSQL(def, field, value)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s by %s: %w", def.Info.Table, field, err)
	}
	return collect(rows, def)
}

// Insert stores values as a new row and returns it with its id.
func (s *Store) Insert(ctx context.Context, def core.ResourceDefinition, values core.Row) (core.Row, error) {
	query, args := insertSQL(def, values)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", def.Info.Table, err)
	}
	return collectOne(rows, def, 0)
}

// Update overwrites the given columns of row id and returns the result.
func (s *Store) Update(ctx context.Context, def core.ResourceDefinition, id int64, values core.Row) (core.Row, error) {
	query, args := updateSQL(def, id, values)
	if query == "" {
		return s.Get(ctx, def, id)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", def.Info.Table, id, err)
	}
	return collectOne(rows, def, id)
}

// Delete removes row id.
func (s *Store) Delete(ctx context.Context, def core.ResourceDefinition, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		quoteIdentifier(def.Info.Table), quoteIdentifier(core.ColumnID))

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", def.Info.Table, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", def.Info.Table, id, core.ErrNotFound)
	}
	return nil
}

// Count returns the number of rows of def.
func (s *Store) Count(ctx context.Context, def core.ResourceDefinition) (int64, error) {
	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdentifier(def.Info.Table))
	if err := s.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", def.Info.Table, err)
	}
	return n, nil
}

// columns returns every column of def: id, the fields, then timestamps.
func columns(def core.ResourceDefinition) []string {
	cols := make([]string, 0, len(def.Fields)+3)
	cols = append(cols, core.ColumnID)
	cols = append(cols, def.Columns()...)
	return append(cols, core.ColumnCreatedAt, core.ColumnUpdatedAt)
}

func selectList(def core.ResourceDefinition) string {
	cols := columns(def)
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}

// writable returns the columns of def present in values, in column order.
// The id is never written.
func writable(def core.ResourceDefinition, values core.Row) []string {
	var cols []string
	for _, c := range columns(def) {
		if c == core.ColumnID {
			continue
		}
		if _, ok := values[c]; ok {
			cols = append(cols, c)
		}
	}
	return cols
}

func insertSQL(def core.ResourceDefinition, values core.Row) (string, []any) {
	cols := writable(def, values)
	table := quoteIdentifier(def.Info.Table)

	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", table, selectList(def)), nil
	}

	names := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = quoteIdentifier(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = values[c]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(names, ", "), strings.Join(placeholders, ", "), selectList(def))
	return query, args
}

// updateSQL returns an empty query when values touches no column.
func updateSQL(def core.ResourceDefinition, id int64, values core.Row) (string, []any) {
	cols := writable(def, values)
	if len(cols) == 0 {
		return "", nil
	}

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", quoteIdentifier(c), i+1)
		args = append(args, values[c])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		quoteIdentifier(def.Info.Table), strings.Join(sets, ", "),
		quoteIdentifier(core.ColumnID), len(args), selectList(def))
	return query, args
}

func findSQL(def core.ResourceDefinition, field string, value any) (string, []any) {
	base := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		selectList(def), quoteIdentifier(def.Info.Table), quoteIdentifier(field))
	order := " ORDER BY " + quoteIdentifier(core.ColumnID)

	if value == nil {
		return base + " IS NULL" + order, nil
	}
	return base + " = $1" + order, []any{value}
}

// collect reads every row of a result set into normalized Rows.
func collect(rows pgx.Rows, def core.ResourceDefinition) ([]core.Row, error) {
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", def.Info.Table, err)
	}

	out := make([]core.Row, len(maps))
	for i, m := range maps {
		out[i] = normalizeRow(m)
	}
	return out, nil
}

// collectOne reads a single-row result, mapping no rows to ErrNotFound.
func collectOne(rows pgx.Rows, def core.ResourceDefinition, id int64) (core.Row, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s %d: %w", def.Info.Table, id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", def.Info.Table, err)
	}
	return normalizeRow(m), nil
}

func normalizeRow(m map[string]any) core.Row {
	row := make(core.Row, len(m))
	for k, v := range m {
		row[k] = normalizeValue(v)
	}
	return row
}

// normalizeValue converts pgx's decoded values to the types core.Row
// documents.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case float32:
		return float64(val)
	case time.Time:
		return val.UTC()
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return val
	default:
		return v
	}
}

// quoteIdentifier safely quotes a PostgreSQL identifier.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
