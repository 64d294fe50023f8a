package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action enumerates the account lifecycle events recorded in the ledger.
type Action string

const (
	ActionSignup Action = "signup"
	ActionLogin  Action = "login"
)

// Valid reports whether the action is one of the enumerated event kinds.
func (a Action) Valid() bool {
	switch a {
	case ActionSignup, ActionLogin:
		return true
	}
	return false
}

// Account represents a registered identity. The ID and CreatedAt fields are
// system-generated at registration and immutable afterwards.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// ActivityRecord describes a single ledger entry shared across the sink and
// query layers. EventID carries a per-operation correlation id so callers can
// tie ledger rows back to the command execution that produced them.
type ActivityRecord struct {
	ID         int64
	AccountID  int64
	Action     Action
	EventID    string
	OccurredAt time.Time
}

// AccountRegistry persists accounts. Create must rely on the storage-level
// unique constraint for username uniqueness: a duplicate attempt returns
// ErrDuplicateUsername and leaves state untouched.
type AccountRegistry interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
}

// ActivitySink is the minimal DI contract for emitting ledger entries. Keep it
// stable and limited to Append so hosts can swap sinks without breaking
// changes.
type ActivitySink interface {
	Append(ctx context.Context, record ActivityRecord) (int64, error)
}

// ActivityRepository exposes read-side access to the ledger.
type ActivityRepository interface {
	ListByAccount(ctx context.Context, filter ActivityFilter) (ActivityPage, error)
	Stats(ctx context.Context, filter ActivityStatsFilter) (ActivityStats, error)
}

// PasswordHasher abstracts the salted adaptive hash used for credentials.
// Hash must generate a fresh salt per call; Verify must not leak match
// information through timing.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) bool
}

// Hooks groups optional callbacks invoked after key workflows complete. The
// sink write always happens before the hook fires.
type Hooks struct {
	AfterActivity func(context.Context, ActivityRecord)
}

// Pagination supports ledger feed queries.
type Pagination struct {
	Limit  int
	Offset int
}

// ActivityFilter narrows ledger feed queries. AccountID is required; results
// are ordered by insertion time.
type ActivityFilter struct {
	AccountID  int64
	Actions    []Action
	Since      *time.Time
	Until      *time.Time
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (ActivityFilter) Type() string {
	return "query.activity.feed"
}

// Validate implements gocommand.Message.
func (filter ActivityFilter) Validate() error {
	if filter.AccountID <= 0 {
		return ErrAccountIDRequired
	}
	return nil
}

// ActivityPage represents a paginated feed response.
type ActivityPage struct {
	Records    []ActivityRecord
	Total      int
	NextOffset int
	HasMore    bool
}

// ActivityStatsFilter scopes aggregate ledger queries.
type ActivityStatsFilter struct {
	AccountID int64
	Since     *time.Time
	Until     *time.Time
}

// Type implements gocommand.Message for query inputs.
func (ActivityStatsFilter) Type() string {
	return "query.activity.stats"
}

// Validate implements gocommand.Message.
func (ActivityStatsFilter) Validate() error {
	return nil
}

// ActivityStats summarizes ledger volume per action.
type ActivityStats struct {
	Total    int
	ByAction map[Action]int
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// IDGenerator abstracts correlation id creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}
