package activity

import (
	"time"

	"github.com/uptrace/bun"
)

// LogEntry models the persisted row in account_activity.
type LogEntry struct {
	bun.BaseModel `bun:"table:account_activity"`

	ID        int64     `bun:"id,pk,autoincrement"`
	AccountID int64     `bun:"account_id"`
	Action    string    `bun:"action"`
	EventID   string    `bun:"event_id"`
	CreatedAt time.Time `bun:"created_at"`
}
