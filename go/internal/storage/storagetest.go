package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mcdev12/minigames/go/internal/dbconfig"
)

// OpenTemp opens a migrated SQLite database under t.TempDir and closes it on cleanup.
func OpenTemp(t testing.TB) *sql.DB {
	t.Helper()

	cfg := dbconfig.Config{
		Driver:     dbconfig.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "minigames.db"),
	}
	database, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open temp store: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("close temp store: %v", err)
		}
	})
	return database
}
