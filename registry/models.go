package registry

import (
	"time"

	"github.com/uptrace/bun"
)

// AccountRow models the persisted row in accounts.
type AccountRow struct {
	bun.BaseModel `bun:"table:accounts"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username"`
	PasswordHash string    `bun:"password_hash"`
	CreatedAt    time.Time `bun:"created_at"`
}
