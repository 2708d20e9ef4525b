package persistence

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every embedded migration in file name order. Statements are
// idempotent, so it is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("fs.Glob: %w", err)
	}

	sort.Strings(names)

	for _, name := range names {
		body, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("migrations.ReadFile: %w", err)
		}

		for _, stmt := range strings.Split(string(body), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}

			if _, err = db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("db.ExecContext %s: %w", name, err)
			}
		}
	}

	return nil
}
