package database

import (
	"context"
	"database/sql"
	"log"
	"testing"

	"github.com/thenoetrevino/leadboard/internal/models"
	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with the full schema and the
// default columns seeded.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	})
	return db
}

// newTestLead returns a lead that passes validation, in the given stage
func newTestLead(title, stage string) *models.Lead {
	return &models.Lead{
		Title:              title,
		Budget:             1200,
		Company:            "Acme",
		Tags:               []string{"Hot"},
		Name:               "Jane Roe",
		Email:              "jane@example.com",
		Phone:              "555-0100",
		LeadSource:         models.SourceWebsite,
		LeadScore:          4,
		InterestedProducts: []string{"Analytics"},
		Status:             models.StatusNew,
		Stage:              stage,
	}
}
