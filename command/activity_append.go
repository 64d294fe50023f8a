package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/marketeye/go-credstore/pkg/types"
)

// ActivityAppendInput wraps a record to persist through the ActivitySink.
type ActivityAppendInput struct {
	AccountID int64
	Action    types.Action
	Result    *ActivityAppendResult
}

// Type implements gocommand.Message.
func (ActivityAppendInput) Type() string {
	return "command.activity.append"
}

// Validate implements gocommand.Message.
func (input ActivityAppendInput) Validate() error {
	switch {
	case input.AccountID <= 0:
		return ErrAccountIDRequired
	case !input.Action.Valid():
		return ErrActionRequired
	default:
		return nil
	}
}

// ActivityAppendResult exposes the appended ledger entry.
type ActivityAppendResult struct {
	LogID   int64
	EventID string
}

// ActivityAppendCommand records account lifecycle events directly, for hosts
// that emit audit entries outside the register/authenticate flows.
type ActivityAppendCommand struct {
	sink  types.ActivitySink
	hooks types.Hooks
	clock types.Clock
	idGen types.IDGenerator
}

// ActivityAppendConfig wires dependencies for the append command.
type ActivityAppendConfig struct {
	Sink  types.ActivitySink
	Hooks types.Hooks
	Clock types.Clock
	IDGen types.IDGenerator
}

// NewActivityAppendCommand constructs the append handler.
func NewActivityAppendCommand(cfg ActivityAppendConfig) *ActivityAppendCommand {
	return &ActivityAppendCommand{
		sink:  cfg.Sink,
		hooks: cfg.Hooks,
		clock: safeClock(cfg.Clock),
		idGen: safeIDGen(cfg.IDGen),
	}
}

var _ gocommand.Commander[ActivityAppendInput] = (*ActivityAppendCommand)(nil)

// Execute validates and persists the supplied record. An id with no matching
// account surfaces as ErrUnknownAccount from the sink.
func (c *ActivityAppendCommand) Execute(ctx context.Context, input ActivityAppendInput) error {
	if c.sink == nil {
		return types.ErrMissingActivitySink
	}
	if err := input.Validate(); err != nil {
		return err
	}
	record := types.ActivityRecord{
		AccountID:  input.AccountID,
		Action:     input.Action,
		EventID:    c.idGen.UUID().String(),
		OccurredAt: now(c.clock),
	}
	id, err := c.sink.Append(ctx, record)
	if err != nil {
		return err
	}
	record.ID = id
	emitActivityHook(ctx, c.hooks, record)

	if input.Result != nil {
		*input.Result = ActivityAppendResult{
			LogID:   id,
			EventID: record.EventID,
		}
	}
	return nil
}
