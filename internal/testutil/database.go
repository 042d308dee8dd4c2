package testutil

import (
	"testing"

	"archie-go/internal/archie"
	"archie-go/internal/database"
)

// NewTestDatabase creates an in-memory SQLite history with migrations applied.
// The database is closed when the test completes.
func NewTestDatabase(t *testing.T) archie.History {
	t.Helper()

	db, err := database.NewSQLiteHistory(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
