package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	credstore "github.com/marketeye/go-credstore"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// Apply executes the embedded schema migrations for the database dialect.
// Every statement is CREATE IF NOT EXISTS so the call is idempotent: it is
// safe on every process start and never drops or alters existing data.
func Apply(ctx context.Context, db *bun.DB) error {
	dir := "data/sql/migrations"
	if db.Dialect().Name() == dialect.SQLite {
		dir += "/sqlite"
	}

	paths, err := fs.Glob(credstore.GetMigrationsFS(), dir+"/*.up.sql")
	if err != nil {
		return fmt.Errorf("migrations: list %s: %w", dir, err)
	}
	for _, path := range paths {
		content, err := fs.ReadFile(credstore.GetMigrationsFS(), path)
		if err != nil {
			return fmt.Errorf("migrations: read %s: %w", path, err)
		}
		for _, stmt := range splitStatements(string(content)) {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrations: apply %s: %w", path, err)
			}
		}
	}
	return nil
}

func splitStatements(sql string) []string {
	lines := strings.Split(sql, "\n")
	var builder strings.Builder
	var statements []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		builder.WriteString(line)
		if strings.HasSuffix(line, ";") {
			statements = append(statements, strings.TrimSuffix(builder.String(), ";"))
			builder.Reset()
		} else {
			builder.WriteString(" ")
		}
	}
	if builder.Len() > 0 {
		statements = append(statements, builder.String())
	}
	return statements
}
