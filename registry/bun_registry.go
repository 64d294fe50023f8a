package registry

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/marketeye/go-credstore/pkg/types"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed account registry.
type RepositoryConfig struct {
	DB    *bun.DB
	Clock types.Clock
}

// Repository persists accounts. Username uniqueness is delegated entirely to
// the storage-level UNIQUE constraint; Create performs a single atomic insert
// and maps the constraint violation to ErrDuplicateUsername.
type Repository struct {
	db    *bun.DB
	clock types.Clock
}

// NewRepository constructs the registry.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("registry: db required")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &Repository{
		db:    cfg.DB,
		clock: clock,
	}, nil
}

var _ types.AccountRegistry = (*Repository)(nil)

// Create inserts a new account row. On a duplicate username the insert fails
// at the constraint and no state is mutated.
func (r *Repository) Create(ctx context.Context, account *types.Account) (*types.Account, error) {
	if account == nil {
		return nil, types.ErrUsernameRequired
	}
	row := &AccountRow{
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt,
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = r.clock.Now()
	}
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, types.ErrDuplicateUsername
		}
		return nil, err
	}
	return toAccount(row), nil
}

// GetByUsername loads an account by its exact username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*types.Account, error) {
	row := &AccountRow{}
	err := r.db.NewSelect().
		Model(row).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrAccountNotFound
		}
		return nil, err
	}
	return toAccount(row), nil
}

// GetByID loads an account by its generated id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*types.Account, error) {
	row := &AccountRow{}
	err := r.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrAccountNotFound
		}
		return nil, err
	}
	return toAccount(row), nil
}

func toAccount(row *AccountRow) *types.Account {
	if row == nil {
		return nil
	}
	return &types.Account{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}

// isUniqueViolation detects unique-constraint failures from the sqlite driver
// with a message fallback for the postgres dialect.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
