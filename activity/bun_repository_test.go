package activity

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/marketeye/go-credstore/migrations"
	"github.com/marketeye/go-credstore/pkg/types"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accountID := seedAccount(t, db, "alice")

	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	signupID, err := store.Append(ctx, types.ActivityRecord{
		AccountID:  accountID,
		Action:     types.ActionSignup,
		EventID:    "evt-1",
		OccurredAt: base,
	})
	require.NoError(t, err)
	require.Positive(t, signupID)

	loginID, err := store.Append(ctx, types.ActivityRecord{
		AccountID:  accountID,
		Action:     types.ActionLogin,
		EventID:    "evt-2",
		OccurredAt: base.Add(time.Minute),
	})
	require.NoError(t, err)
	require.Greater(t, loginID, signupID)

	page, err := store.ListByAccount(ctx, types.ActivityFilter{
		AccountID:  accountID,
		Pagination: types.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	require.Equal(t, 2, page.Total)
	require.Equal(t, types.ActionSignup, page.Records[0].Action)
	require.Equal(t, types.ActionLogin, page.Records[1].Action)
	require.Equal(t, "evt-1", page.Records[0].EventID)
}

func TestRepository_AppendUnknownAccount(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	_, err = store.Append(ctx, types.ActivityRecord{
		AccountID: 999,
		Action:    types.ActionLogin,
	})
	require.ErrorIs(t, err, types.ErrUnknownAccount)

	_, err = store.Append(ctx, types.ActivityRecord{
		Action: types.ActionLogin,
	})
	require.ErrorIs(t, err, types.ErrUnknownAccount)
}

func TestRepository_AppendRejectsUnknownAction(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accountID := seedAccount(t, db, "alice")

	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	_, err = store.Append(ctx, types.ActivityRecord{
		AccountID: accountID,
		Action:    "password.reset",
	})
	require.ErrorIs(t, err, types.ErrActionRequired)
}

func TestRepository_ListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := seedAccount(t, db, "alice")
	bob := seedAccount(t, db, "bob")

	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.Append(ctx, types.ActivityRecord{
			AccountID:  alice,
			Action:     types.ActionLogin,
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err = store.Append(ctx, types.ActivityRecord{
		AccountID:  bob,
		Action:     types.ActionSignup,
		OccurredAt: base,
	})
	require.NoError(t, err)

	page, err := store.ListByAccount(ctx, types.ActivityFilter{
		AccountID:  alice,
		Pagination: types.Pagination{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	require.Equal(t, 3, page.Total)
	require.True(t, page.HasMore)

	page, err = store.ListByAccount(ctx, types.ActivityFilter{
		AccountID:  alice,
		Actions:    []types.Action{types.ActionSignup},
		Pagination: types.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Empty(t, page.Records)

	_, err = store.ListByAccount(ctx, types.ActivityFilter{})
	require.ErrorIs(t, err, types.ErrAccountIDRequired)
}

func TestRepository_Stats(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accountID := seedAccount(t, db, "alice")

	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	_, err = store.Append(ctx, types.ActivityRecord{AccountID: accountID, Action: types.ActionSignup})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = store.Append(ctx, types.ActivityRecord{AccountID: accountID, Action: types.ActionLogin})
		require.NoError(t, err)
	}

	stats, err := store.Stats(ctx, types.ActivityStatsFilter{AccountID: accountID})
	require.NoError(t, err)
	require.Equal(t, 4, stats.Total)
	require.Equal(t, 1, stats.ByAction[types.ActionSignup])
	require.Equal(t, 3, stats.ByAction[types.ActionLogin])
}

func seedAccount(t *testing.T, db *bun.DB, username string) int64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO accounts (username, password_hash, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		username, "seed-hash")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func newTestDB(t *testing.T) *bun.DB {
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
	require.NoError(t, migrations.Apply(context.Background(), db))
	return db
}
