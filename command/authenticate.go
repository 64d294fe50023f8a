package command

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/marketeye/go-credstore/pkg/types"
)

// AuthenticateInput carries a login attempt.
type AuthenticateInput struct {
	Username string
	Password string
	Result   *AuthenticateResult
}

// Type implements gocommand.Message.
func (AuthenticateInput) Type() string {
	return "command.account.authenticate"
}

// Validate implements gocommand.Message. Empty input fails closed with the
// same merged error as a non-match so nothing is learned from the response.
func (input AuthenticateInput) Validate() error {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Password) == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// AuthenticateResult exposes the verified account id plus the ledger
// correlation id.
type AuthenticateResult struct {
	AccountID int64
	EventID   string
}

// AuthenticateCommand verifies credentials and records the login ledger entry.
type AuthenticateCommand struct {
	registry types.AccountRegistry
	hasher   types.PasswordHasher
	sink     types.ActivitySink
	hooks    types.Hooks
	clock    types.Clock
	idGen    types.IDGenerator
	logger   types.Logger
}

// AuthenticateCommandConfig wires dependencies for the login handler.
type AuthenticateCommandConfig struct {
	Registry types.AccountRegistry
	Hasher   types.PasswordHasher
	Activity types.ActivitySink
	Hooks    types.Hooks
	Clock    types.Clock
	IDGen    types.IDGenerator
	Logger   types.Logger
}

// NewAuthenticateCommand constructs the login handler.
func NewAuthenticateCommand(cfg AuthenticateCommandConfig) *AuthenticateCommand {
	return &AuthenticateCommand{
		registry: cfg.Registry,
		hasher:   cfg.Hasher,
		sink:     cfg.Activity,
		hooks:    cfg.Hooks,
		clock:    safeClock(cfg.Clock),
		idGen:    safeIDGen(cfg.IDGen),
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[AuthenticateInput] = (*AuthenticateCommand)(nil)

// Execute looks up the stored hash and verifies the password against it.
// Unknown username and mismatch collapse into ErrInvalidCredentials; bcrypt
// provides the constant-time comparison. A login ledger entry is appended
// before the call returns.
func (c *AuthenticateCommand) Execute(ctx context.Context, input AuthenticateInput) error {
	if c.registry == nil {
		return types.ErrMissingAccountRegistry
	}
	if c.hasher == nil {
		return types.ErrMissingPasswordHasher
	}
	if err := input.Validate(); err != nil {
		return err
	}

	account, err := c.registry.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, types.ErrAccountNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !c.hasher.Verify(account.PasswordHash, input.Password) {
		return ErrInvalidCredentials
	}

	record := types.ActivityRecord{
		AccountID:  account.ID,
		Action:     types.ActionLogin,
		EventID:    c.idGen.UUID().String(),
		OccurredAt: now(c.clock),
	}
	record.ID = c.appendActivity(ctx, record)
	emitActivityHook(ctx, c.hooks, record)

	if input.Result != nil {
		*input.Result = AuthenticateResult{
			AccountID: account.ID,
			EventID:   record.EventID,
		}
	}
	return nil
}

func (c *AuthenticateCommand) appendActivity(ctx context.Context, record types.ActivityRecord) int64 {
	if c.sink == nil {
		return 0
	}
	id, err := c.sink.Append(ctx, record)
	if err != nil {
		c.logger.Error("credstore: login ledger append failed", err,
			"account_id", record.AccountID,
			"event_id", record.EventID,
		)
		return 0
	}
	return id
}
