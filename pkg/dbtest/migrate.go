package dbtest

import (
	"fmt"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-go sqlite driver
)

// MigrateFromFile executes all SQL queries from the files over a database
// connection.
func MigrateFromFile(db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		fileBytes, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		if _, err = db.Exec(string(fileBytes)); err != nil {
			return fmt.Errorf("db.Exec: %w", err)
		}
	}

	return nil
}

// NewSQLite opens a private in-memory sqlite database, applies the given
// migration files and closes it when the test ends.
func NewSQLite(t *testing.T, fileNames ...string) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sqlx.Open: %v", err)
	}

	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	t.Cleanup(func() { db.Close() })

	if err = MigrateFromFile(db, fileNames...); err != nil {
		t.Fatalf("MigrateFromFile: %v", err)
	}

	return db
}
