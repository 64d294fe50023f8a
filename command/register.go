package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/marketeye/go-credstore/pkg/types"
)

// RegisterInput carries the payload for account registration. The password is
// plaintext on input, hashed immediately and never persisted raw.
type RegisterInput struct {
	Username string
	Password string
	Result   *RegisterResult
}

// Type implements gocommand.Message.
func (RegisterInput) Type() string {
	return "command.account.register"
}

// Validate implements gocommand.Message. Empty input is rejected before any
// storage access.
func (input RegisterInput) Validate() error {
	switch {
	case strings.TrimSpace(input.Username) == "":
		return ErrUsernameRequired
	case strings.TrimSpace(input.Password) == "":
		return ErrPasswordRequired
	default:
		return nil
	}
}

// RegisterResult exposes the created account plus the ledger correlation id.
type RegisterResult struct {
	Account *types.Account
	EventID string
}

// RegisterCommand creates accounts and records the signup ledger entry.
type RegisterCommand struct {
	registry types.AccountRegistry
	hasher   types.PasswordHasher
	sink     types.ActivitySink
	hooks    types.Hooks
	clock    types.Clock
	idGen    types.IDGenerator
	logger   types.Logger
}

// RegisterCommandConfig wires dependencies for the registration handler.
type RegisterCommandConfig struct {
	Registry types.AccountRegistry
	Hasher   types.PasswordHasher
	Activity types.ActivitySink
	Hooks    types.Hooks
	Clock    types.Clock
	IDGen    types.IDGenerator
	Logger   types.Logger
}

// NewRegisterCommand constructs the registration handler.
func NewRegisterCommand(cfg RegisterCommandConfig) *RegisterCommand {
	return &RegisterCommand{
		registry: cfg.Registry,
		hasher:   cfg.Hasher,
		sink:     cfg.Activity,
		hooks:    cfg.Hooks,
		clock:    safeClock(cfg.Clock),
		idGen:    safeIDGen(cfg.IDGen),
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[RegisterInput] = (*RegisterCommand)(nil)

// Execute hashes the password and inserts the account in a single atomic
// attempt; the storage-level unique constraint is the only duplicate check.
// The account insert commits before the signup ledger entry so the entry
// always references an existing id.
func (c *RegisterCommand) Execute(ctx context.Context, input RegisterInput) error {
	if c.registry == nil {
		return types.ErrMissingAccountRegistry
	}
	if c.hasher == nil {
		return types.ErrMissingPasswordHasher
	}
	if err := input.Validate(); err != nil {
		return err
	}

	hash, err := c.hasher.Hash(input.Password)
	if err != nil {
		return err
	}

	created, err := c.registry.Create(ctx, &types.Account{
		Username:     input.Username,
		PasswordHash: hash,
		CreatedAt:    now(c.clock),
	})
	if err != nil {
		return err
	}

	record := types.ActivityRecord{
		AccountID:  created.ID,
		Action:     types.ActionSignup,
		EventID:    c.idGen.UUID().String(),
		OccurredAt: now(c.clock),
	}
	record.ID = c.appendActivity(ctx, record)
	emitActivityHook(ctx, c.hooks, record)

	if input.Result != nil {
		*input.Result = RegisterResult{
			Account: created,
			EventID: record.EventID,
		}
	}
	return nil
}

// appendActivity writes the audit entry. The account row is the source of
// truth; a ledger fault is logged, not surfaced as a registration failure.
func (c *RegisterCommand) appendActivity(ctx context.Context, record types.ActivityRecord) int64 {
	if c.sink == nil {
		return 0
	}
	id, err := c.sink.Append(ctx, record)
	if err != nil {
		c.logger.Error("credstore: signup ledger append failed", err,
			"account_id", record.AccountID,
			"event_id", record.EventID,
		)
		return 0
	}
	return id
}
