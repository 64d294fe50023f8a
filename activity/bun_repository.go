package activity

import (
	"context"
	"errors"
	"strings"

	"github.com/marketeye/go-credstore/pkg/types"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed ledger repository.
type RepositoryConfig struct {
	DB    *bun.DB
	Clock types.Clock
}

// Repository persists ledger entries and exposes query helpers. The ledger is
// append-only by contract: no update or delete methods exist.
type Repository struct {
	db    *bun.DB
	clock types.Clock
}

// NewRepository constructs a repository that implements both ActivitySink and
// ActivityRepository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("activity: db required")
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

var (
	_ types.ActivitySink       = (*Repository)(nil)
	_ types.ActivityRepository = (*Repository)(nil)
)

// Append inserts a ledger entry and returns its generated id. Referential
// integrity is delegated to the foreign key: an id with no matching account
// maps to ErrUnknownAccount.
func (r *Repository) Append(ctx context.Context, record types.ActivityRecord) (int64, error) {
	if record.AccountID <= 0 {
		return 0, types.ErrUnknownAccount
	}
	if !record.Action.Valid() {
		return 0, types.ErrActionRequired
	}
	entry := &LogEntry{
		AccountID: record.AccountID,
		Action:    string(record.Action),
		EventID:   record.EventID,
		CreatedAt: record.OccurredAt,
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.clock.Now()
	}
	if _, err := r.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		if isForeignKeyViolation(err) {
			return 0, types.ErrUnknownAccount
		}
		return 0, err
	}
	return entry.ID, nil
}

// ListByAccount returns the ledger entries for one account ordered by
// insertion time, oldest first.
func (r *Repository) ListByAccount(ctx context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	if err := filter.Validate(); err != nil {
		return types.ActivityPage{}, err
	}
	pagination := normalizePagination(filter.Pagination, 50, 200)

	var rows []*LogEntry
	query := r.db.NewSelect().
		Model(&rows).
		OrderExpr("created_at ASC, id ASC").
		Limit(pagination.Limit).
		Offset(pagination.Offset)
	query = applyFilter(query, filter)

	total, err := query.ScanAndCount(ctx)
	if err != nil {
		return types.ActivityPage{}, err
	}
	records := make([]types.ActivityRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return types.ActivityPage{
		Records:    records,
		Total:      total,
		NextOffset: pagination.Offset + pagination.Limit,
		HasMore:    pagination.Offset+pagination.Limit < total,
	}, nil
}

// Stats aggregates ledger counts grouped by action.
func (r *Repository) Stats(ctx context.Context, filter types.ActivityStatsFilter) (types.ActivityStats, error) {
	stats := types.ActivityStats{
		ByAction: make(map[types.Action]int),
	}
	query := r.db.NewSelect().
		Table("account_activity").
		ColumnExpr("COUNT(*) AS total").
		ColumnExpr("action").
		Group("action")
	if filter.AccountID > 0 {
		query = query.Where("account_id = ?", filter.AccountID)
	}
	if filter.Since != nil && !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}
	if filter.Until != nil && !filter.Until.IsZero() {
		query = query.Where("created_at <= ?", filter.Until)
	}

	type row struct {
		Action string `bun:"action"`
		Total  int    `bun:"total"`
	}
	var rows []row
	if err := query.Scan(ctx, &rows); err != nil {
		return stats, err
	}
	total := 0
	for _, rec := range rows {
		stats.ByAction[types.Action(rec.Action)] = rec.Total
		total += rec.Total
	}
	stats.Total = total
	return stats, nil
}

func applyFilter(q *bun.SelectQuery, filter types.ActivityFilter) *bun.SelectQuery {
	q = q.Where("account_id = ?", filter.AccountID)
	if len(filter.Actions) > 0 {
		actions := make([]string, 0, len(filter.Actions))
		for _, action := range filter.Actions {
			actions = append(actions, string(action))
		}
		q = q.Where("action IN (?)", bun.In(actions))
	}
	if filter.Since != nil && !filter.Since.IsZero() {
		q = q.Where("created_at >= ?", filter.Since)
	}
	if filter.Until != nil && !filter.Until.IsZero() {
		q = q.Where("created_at <= ?", filter.Until)
	}
	return q
}

func toRecord(entry *LogEntry) types.ActivityRecord {
	if entry == nil {
		return types.ActivityRecord{}
	}
	return types.ActivityRecord{
		ID:         entry.ID,
		AccountID:  entry.AccountID,
		Action:     types.Action(entry.Action),
		EventID:    entry.EventID,
		OccurredAt: entry.CreatedAt,
	}
}

func normalizePagination(p types.Pagination, def, max int) types.Pagination {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// isForeignKeyViolation detects referential-integrity failures from the sqlite
// driver with a message fallback for the postgres dialect.
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	msg := err.Error()
	return strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}
