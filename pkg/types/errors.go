package types

import "errors"

var (
	// ErrDuplicateUsername indicates the username is already registered. The
	// storage-level unique constraint is the sole source of this signal.
	ErrDuplicateUsername = errors.New("credstore: username already exists")
	// ErrInvalidCredentials covers unknown username and password mismatch
	// alike so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("credstore: invalid credentials")
	// ErrUnknownAccount indicates a ledger append referenced a user id with no
	// matching account row.
	ErrUnknownAccount = errors.New("credstore: unknown account")
	// ErrUsernameRequired indicates registration was attempted without a username.
	ErrUsernameRequired = errors.New("credstore: username required")
	// ErrPasswordRequired indicates registration was attempted without a password.
	ErrPasswordRequired = errors.New("credstore: password required")
	// ErrActionRequired indicates a ledger append omitted the action tag.
	ErrActionRequired = errors.New("credstore: activity action required")
	// ErrAccountIDRequired indicates an account identifier was omitted.
	ErrAccountIDRequired = errors.New("credstore: account id required")
	// ErrAccountNotFound indicates a registry lookup matched no row.
	ErrAccountNotFound = errors.New("credstore: account not found")

	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("credstore: service not ready")
	// ErrMissingAccountRegistry occurs when no account registry was supplied.
	ErrMissingAccountRegistry = errors.New("credstore: missing account registry")
	// ErrMissingActivitySink occurs when no activity sink was supplied.
	ErrMissingActivitySink = errors.New("credstore: missing activity sink")
	// ErrMissingActivityRepository occurs when no activity repository was supplied.
	ErrMissingActivityRepository = errors.New("credstore: missing activity repository")
	// ErrMissingPasswordHasher occurs when no password hasher was supplied.
	ErrMissingPasswordHasher = errors.New("credstore: missing password hasher")
)
