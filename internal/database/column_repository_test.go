package database

import (
	"context"
	"errors"
	"testing"

	"github.com/thenoetrevino/leadboard/internal/models"
)

// TestSeededColumns verifies the default stages exist in order after migration
func TestSeededColumns(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	columns, err := repo.ListColumns(context.Background())
	if err != nil {
		t.Fatalf("ListColumns failed: %v", err)
	}

	want := []string{"new", "qualified", "won"}
	if len(columns) != len(want) {
		t.Fatalf("Expected %d columns, got %d", len(want), len(columns))
	}
	for i, key := range want {
		if columns[i].Key != key {
			t.Errorf("Column %d: expected key %q, got %q", i, key, columns[i].Key)
		}
	}
}

// TestMigrationsIdempotent verifies a second migration run does not reseed
func TestMigrationsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	if err := runMigrations(context.Background(), db); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}

	columns, err := NewRepository(db).ListColumns(context.Background())
	if err != nil {
		t.Fatalf("ListColumns failed: %v", err)
	}
	if len(columns) != len(models.DefaultColumns) {
		t.Errorf("Expected %d columns after rerun, got %d", len(models.DefaultColumns), len(columns))
	}
}

// TestInsertColumnMiddle tests inserting a column between two others shifts the tail
func TestInsertColumnMiddle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	if _, err := repo.InsertColumn(ctx, models.Column{Key: "contacted", Title: "Contacted", Order: 1}); err != nil {
		t.Fatalf("InsertColumn failed: %v", err)
	}

	columns, err := repo.ListColumns(ctx)
	if err != nil {
		t.Fatalf("ListColumns failed: %v", err)
	}

	want := []string{"new", "contacted", "qualified", "won"}
	for i, key := range want {
		if columns[i].Key != key {
			t.Errorf("Position %d: expected %q, got %q", i, key, columns[i].Key)
		}
		if columns[i].Order != i {
			t.Errorf("Column %q: expected order %d, got %d", key, i, columns[i].Order)
		}
	}
}

// TestInsertColumnDuplicateKey verifies key collisions are rejected, not overwritten
func TestInsertColumnDuplicateKey(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	_, err := repo.InsertColumn(ctx, models.Column{Key: "won", Title: "Won Again", Order: 3})
	if !errors.Is(err, models.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}

	columns, _ := repo.ListColumns(ctx)
	if len(columns) != 3 {
		t.Errorf("Expected column count unchanged at 3, got %d", len(columns))
	}
	if columns[2].Title != "Won" {
		t.Errorf("Expected original title to survive, got %q", columns[2].Title)
	}
}

// TestDeleteColumn tests removal and the not-found path
func TestDeleteColumn(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	if err := repo.DeleteColumn(ctx, "qualified"); err != nil {
		t.Fatalf("DeleteColumn failed: %v", err)
	}
	if err := repo.DeleteColumn(ctx, "qualified"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	columns, _ := repo.ListColumns(ctx)
	if len(columns) != 2 {
		t.Errorf("Expected 2 columns, got %d", len(columns))
	}
}

// TestCountLeadsInStage counts only leads referencing the key
func TestCountLeadsInStage(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	for _, stage := range []string{"new", "new", "won"} {
		if _, err := repo.InsertLead(ctx, newTestLead("Deal", stage)); err != nil {
			t.Fatalf("InsertLead failed: %v", err)
		}
	}

	cases := map[string]int{"new": 2, "won": 1, "qualified": 0}
	for key, want := range cases {
		got, err := repo.CountLeadsInStage(ctx, key)
		if err != nil {
			t.Fatalf("CountLeadsInStage(%q) failed: %v", key, err)
		}
		if got != want {
			t.Errorf("CountLeadsInStage(%q) = %d, want %d", key, got, want)
		}
	}
}
