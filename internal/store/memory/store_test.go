package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/nonprofit/internal/core"
)

var notes = core.ResourceDefinition{
	Info: core.ResourceInfo{Key: "notes", Table: "notes"},
	Fields: []core.FieldSpec{
		{Name: "title", Type: core.FieldText},
		{Name: "tags", Type: core.FieldList},
		{Name: "done", Type: core.FieldBool},
		{Name: "due", Type: core.FieldDate},
	},
}

func TestStore_InsertAssignsIDs(t *testing.T) {
	ctx := context.Background()
	s := New()

	a, err := s.Insert(ctx, notes, core.Row{"title": "first"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	b, err := s.Insert(ctx, notes, core.Row{"title": "second", "bogus": "dropped"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if a.ID() != 1 || b.ID() != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", a.ID(), b.ID())
	}
	if _, ok := b["bogus"]; ok {
		t.Error("unknown column should be dropped")
	}
	if v, ok := b["done"]; !ok || v != nil {
		t.Errorf("missing field should be present as nil, got %v (%v)", v, ok)
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	row, _ := s.Insert(ctx, notes, core.Row{"title": "a", "tags": []string{"x"}})
	row["title"] = "changed"
	row.Strings("tags")[0] = "changed"

	got, err := s.Get(ctx, notes, row.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.String("title") != "a" || got.Strings("tags")[0] != "x" {
		t.Errorf("stored row was mutated through a returned copy: %v", got)
	}
}

func TestStore_UpdateMerges(t *testing.T) {
	ctx := context.Background()
	s := New()

	row, _ := s.Insert(ctx, notes, core.Row{"title": "a", "done": false})
	updated, err := s.Update(ctx, notes, row.ID(), core.Row{"done": true, core.ColumnID: int64(99)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	want := core.Row{
		"id":         int64(1),
		"title":      "a",
		"tags":       nil,
		"done":       true,
		"due":        nil,
		"created_at": nil,
		"updated_at": nil,
	}
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Errorf("updated row mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.Get(ctx, notes, 7); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Get missing: %v, want ErrNotFound", err)
	}
	if _, err := s.Update(ctx, notes, 7, core.Row{"title": "x"}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Update missing: %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, notes, 7); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Delete missing: %v, want ErrNotFound", err)
	}
}

func TestStore_ListFindCountDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Insert(ctx, notes, core.Row{"title": "a", "done": true, "due": due})
	s.Insert(ctx, notes, core.Row{"title": "b", "done": false})
	s.Insert(ctx, notes, core.Row{"title": "c", "done": true})

	rows, err := s.List(ctx, notes)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 3 || rows[0].String("title") != "a" || rows[2].String("title") != "c" {
		t.Errorf("List order wrong: %v", rows)
	}

	done, _ := s.FindBy(ctx, notes, "done", true)
	if len(done) != 2 {
		t.Errorf("FindBy done = %d rows, want 2", len(done))
	}

	byDue, _ := s.FindBy(ctx, notes, "due", due.In(time.FixedZone("X", 3600)))
	if len(byDue) != 1 || byDue[0].String("title") != "a" {
		t.Errorf("FindBy time should compare instants, got %v", byDue)
	}

	if _, err := s.FindBy(ctx, notes, "nope", 1); err == nil {
		t.Error("FindBy unknown column should fail")
	}

	if err := s.Delete(ctx, notes, 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n, _ := s.Count(ctx, notes); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestStore_EmptyTable(t *testing.T) {
	ctx := context.Background()
	s := New()

	rows, err := s.List(ctx, notes)
	if err != nil || rows == nil || len(rows) != 0 {
		t.Errorf("List on empty table = %v, %v; want empty non-nil", rows, err)
	}
	if n, err := s.Count(ctx, notes); err != nil || n != 0 {
		t.Errorf("Count on empty table = %d, %v", n, err)
	}
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	if _, err := s.Insert(ctx, notes, core.Row{"title": "x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Insert with canceled context: %v", err)
	}
	if _, err := s.List(ctx, notes); !errors.Is(err, context.Canceled) {
		t.Errorf("List with canceled context: %v", err)
	}
}
