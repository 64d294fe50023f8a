package service

import (
	"context"

	"github.com/marketeye/go-credstore/command"
	"github.com/marketeye/go-credstore/pkg/types"
	"github.com/marketeye/go-credstore/query"
)

// Service is the entry point for go-credstore. It wires the account registry,
// the activity ledger, and the password hasher supplied by the host
// application into command/query facades.
type Service struct {
	cfg      Config
	commands Commands
	queries  Queries
}

// Commands exposes the service command handlers.
type Commands struct {
	Register       *command.RegisterCommand
	Authenticate   *command.AuthenticateCommand
	AppendActivity *command.ActivityAppendCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	ActivityFeed  *query.ActivityFeedQuery
	ActivityStats *query.ActivityStatsQuery
}

// Config captures all required dependencies so callers can provide their own
// instances (bun-backed repositories, hooks, clocks).
type Config struct {
	Registry           types.AccountRegistry
	ActivitySink       types.ActivitySink
	ActivityRepository types.ActivityRepository
	Hasher             types.PasswordHasher
	Hooks              types.Hooks
	Clock              types.Clock
	IDGenerator        types.IDGenerator
	Logger             types.Logger
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)
	actRepo := norm.ActivityRepository
	if actRepo == nil {
		if sinkRepo, ok := norm.ActivitySink.(types.ActivityRepository); ok {
			actRepo = sinkRepo
		}
	}
	norm.ActivityRepository = actRepo

	s := &Service{cfg: norm}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s != nil &&
		s.cfg.Registry != nil &&
		s.cfg.ActivitySink != nil &&
		s.cfg.ActivityRepository != nil &&
		s.cfg.Hasher != nil
}

// HealthCheck surfaces missing configuration so upstream transports fail fast
// instead of erroring on first use.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.Ready() {
		return nil
	}
	switch {
	case s == nil || s.cfg.Registry == nil:
		return types.ErrMissingAccountRegistry
	case s.cfg.Hasher == nil:
		return types.ErrMissingPasswordHasher
	case s.cfg.ActivitySink == nil:
		return types.ErrMissingActivitySink
	case s.cfg.ActivityRepository == nil:
		return types.ErrMissingActivityRepository
	}
	return types.ErrServiceNotReady
}

// ActivitySink returns the configured sink so hosts can emit audit records for
// auxiliary workflows.
func (s *Service) ActivitySink() types.ActivitySink {
	if s == nil {
		return nil
	}
	return s.cfg.ActivitySink
}

func (s *Service) buildCommands() Commands {
	return Commands{
		Register: command.NewRegisterCommand(command.RegisterCommandConfig{
			Registry: s.cfg.Registry,
			Hasher:   s.cfg.Hasher,
			Activity: s.cfg.ActivitySink,
			Hooks:    s.cfg.Hooks,
			Clock:    s.cfg.Clock,
			IDGen:    s.cfg.IDGenerator,
			Logger:   s.cfg.Logger,
		}),
		Authenticate: command.NewAuthenticateCommand(command.AuthenticateCommandConfig{
			Registry: s.cfg.Registry,
			Hasher:   s.cfg.Hasher,
			Activity: s.cfg.ActivitySink,
			Hooks:    s.cfg.Hooks,
			Clock:    s.cfg.Clock,
			IDGen:    s.cfg.IDGenerator,
			Logger:   s.cfg.Logger,
		}),
		AppendActivity: command.NewActivityAppendCommand(command.ActivityAppendConfig{
			Sink:  s.cfg.ActivitySink,
			Hooks: s.cfg.Hooks,
			Clock: s.cfg.Clock,
			IDGen: s.cfg.IDGenerator,
		}),
	}
}

func (s *Service) buildQueries() Queries {
	return Queries{
		ActivityFeed:  query.NewActivityFeedQuery(s.cfg.ActivityRepository),
		ActivityStats: query.NewActivityStatsQuery(s.cfg.ActivityRepository),
	}
}
