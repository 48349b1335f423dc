package postgres

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/nonprofit/internal/core"
	_ "github.com/JonMunkholm/nonprofit/internal/core/resources"
)

var notes = core.ResourceDefinition{
	Info: core.ResourceInfo{Key: "notes", Table: "notes"},
	Fields: []core.FieldSpec{
		{Name: "title", Type: core.FieldText},
		{Name: "done", Type: core.FieldBool},
	},
}

const noteColumns = `"id", "title", "done", "created_at", "updated_at"`

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"users", `"users"`},
		{`we"ird`, `"we""ird"`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := quoteIdentifier(tt.in); got != tt.want {
			t.Errorf("quoteIdentifier(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestInsertSQL(t *testing.T) {
	query, args := insertSQL(notes, core.Row{
		"done":          true,
		"title":         "hello",
		core.ColumnID:   int64(5),
		"unknown_field": "x",
	})

	want := `INSERT INTO "notes" ("title", "done") VALUES ($1, $2) RETURNING ` + noteColumns
	if query != want {
		t.Errorf("query:\n got %s\nwant %s", query, want)
	}
	if diff := cmp.Diff([]any{"hello", true}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertSQL_NoValues(t *testing.T) {
	query, args := insertSQL(notes, core.Row{})
	if !strings.HasPrefix(query, `INSERT INTO "notes" DEFAULT VALUES`) || args != nil {
		t.Errorf("got %s %v", query, args)
	}
}

func TestUpdateSQL(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	query, args := updateSQL(notes, 9, core.Row{"title": "t", core.ColumnUpdatedAt: now})

	want := `UPDATE "notes" SET "title" = $1, "updated_at" = $2 WHERE "id" = $3 RETURNING ` + noteColumns
	if query != want {
		t.Errorf("query:\n got %s\nwant %s", query, want)
	}
	if diff := cmp.Diff([]any{"t", now, int64(9)}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}

	if q, _ := updateSQL(notes, 9, core.Row{"nope": 1}); q != "" {
		t.Errorf("update without columns should be empty, got %s", q)
	}
}

func TestFindSQL(t *testing.T) {
	query, args := findSQL(notes, "title", "a")
	want := `SELECT ` + noteColumns + ` FROM "notes" WHERE "title" = $1 ORDER BY "id"`
	if query != want || len(args) != 1 {
		t.Errorf("got %s %v", query, args)
	}

	query, args = findSQL(notes, "title", nil)
	if !strings.Contains(query, `"title" IS NULL`) || args != nil {
		t.Errorf("nil lookup: got %s %v", query, args)
	}
}

func TestNormalizeValue(t *testing.T) {
	local := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	amount := pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true}

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"int32", int32(7), int64(7)},
		{"int16", int16(3), int64(3)},
		{"float32", float32(1.5), float64(1.5)},
		{"time", local, local.UTC()},
		{"numeric", amount, 12.5},
		{"null numeric", pgtype.Numeric{}, nil},
		{"text array", []any{"a", "b"}, []string{"a", "b"}},
		{"string", "x", "x"},
		{"bool", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeValue(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("normalizeValue mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchemaCoversRegisteredTables(t *testing.T) {
	defs := core.All()
	if len(defs) == 0 {
		t.Fatal("no resources registered")
	}
	for _, def := range defs {
		if !strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS "+def.Info.Table+" (") {
			t.Errorf("schema has no table %s", def.Info.Table)
		}
	}
}
