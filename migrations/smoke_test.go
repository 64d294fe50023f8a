package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestApply_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, sqldb := newTestDB(t)

	require.NoError(t, Apply(ctx, db))
	// Safe to invoke on every process start.
	require.NoError(t, Apply(ctx, db))

	require.NoError(t, ValidateSchema(ctx, sqldb, "sqlite"))
}

func TestApply_PreservesExistingData(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)

	require.NoError(t, Apply(ctx, db))
	_, err := db.ExecContext(ctx,
		"INSERT INTO accounts (username, password_hash, created_at) VALUES ('alice', 'h', CURRENT_TIMESTAMP)")
	require.NoError(t, err)

	require.NoError(t, Apply(ctx, db))

	count, err := db.NewSelect().Table("accounts").Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestValidateSchema_ReportsMissingTables(t *testing.T) {
	ctx := context.Background()
	_, sqldb := newTestDB(t)

	err := ValidateSchema(ctx, sqldb, "sqlite")
	require.Error(t, err)

	var validationErr *SchemaValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.MissingTables, "accounts")
	require.Contains(t, validationErr.MissingTables, "account_activity")
}

func TestValidateSchema_UnsupportedDialect(t *testing.T) {
	ctx := context.Background()
	_, sqldb := newTestDB(t)

	require.Error(t, ValidateSchema(ctx, sqldb, "oracle"))
}

func TestFilesystems_IncludesEmbeddedMigrations(t *testing.T) {
	require.NotEmpty(t, Filesystems())
}

func newTestDB(t *testing.T) (*bun.DB, *sql.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	sqldb, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})
	return db, sqldb
}
