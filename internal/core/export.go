package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

// ExportLimit caps the number of rows written by one export.
const ExportLimit = 10000

var exportDate = FieldSpec{Type: FieldDate}

// Export writes the rows of key that match q's search and filters as CSV,
// in q's sort order. Paging is ignored. It returns the number of data rows
// written.
func (s *Service) Export(ctx context.Context, key string, q ListQuery, w io.Writer) (int, error) {
	def, err := s.Resource(key)
	if err != nil {
		return 0, err
	}

	rows, err := s.store.List(ctx, def)
	if err != nil {
		return 0, fmt.Errorf("export %s: %w", key, err)
	}

	tq := buildQuery(def, q)
	rows = tabledata.Filter(rows, rowGetter, tq.Search, tq.Filters, tq.Searchable)
	rows = tabledata.Sort(rows, rowGetter, tq.Sort)
	if len(rows) > ExportLimit {
		rows = rows[:ExportLimit]
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(def.Fields)+3)
	header = append(header, ColumnID)
	header = append(header, def.Columns()...)
	header = append(header, ColumnCreatedAt, ColumnUpdatedAt)
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("export %s: %w", key, err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		record[0] = strconv.FormatInt(row.ID(), 10)
		for i, f := range def.Fields {
			record[i+1] = csvSafe(FormValue(f, row[f.Name]))
		}
		record[len(record)-2] = FormatValue(exportDate, row[ColumnCreatedAt])
		record[len(record)-1] = FormatValue(exportDate, row[ColumnUpdatedAt])
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("export %s: %w", key, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("export %s: %w", key, err)
	}
	return len(rows), nil
}

// csvSafe stops spreadsheet applications from evaluating a cell as a
// formula.
func csvSafe(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
