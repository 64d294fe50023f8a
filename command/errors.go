package command

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/marketeye/go-credstore/pkg/types"
)

var (
	// ErrDuplicateUsername indicates the username is already registered.
	ErrDuplicateUsername = types.ErrDuplicateUsername
	// ErrInvalidCredentials merges unknown-username and password-mismatch
	// failures so callers cannot tell them apart.
	ErrInvalidCredentials = types.ErrInvalidCredentials
	// ErrUnknownAccount indicates a ledger append referenced a missing account.
	ErrUnknownAccount = types.ErrUnknownAccount
	// ErrUsernameRequired indicates registration lacked a username.
	ErrUsernameRequired = types.ErrUsernameRequired
	// ErrPasswordRequired indicates registration lacked a password.
	ErrPasswordRequired = types.ErrPasswordRequired
	// ErrActionRequired indicates a ledger append omitted the action tag.
	ErrActionRequired = types.ErrActionRequired
	// ErrAccountIDRequired indicates a ledger append omitted the account id.
	ErrAccountIDRequired = types.ErrAccountIDRequired
)

// AsRichError maps store sentinels onto go-errors categories so transports can
// render consistent status codes. Unrecognized errors surface as internal
// storage faults.
func AsRichError(err error) error {
	if err == nil {
		return nil
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}

	switch {
	case errors.Is(err, types.ErrDuplicateUsername):
		return goerrors.Wrap(err, goerrors.CategoryConflict, "credstore: registration rejected").
			WithCode(goerrors.CodeConflict).
			WithTextCode("DUPLICATE_USERNAME")
	case errors.Is(err, types.ErrInvalidCredentials):
		return goerrors.Wrap(err, goerrors.CategoryAuth, "credstore: authentication rejected").
			WithCode(goerrors.CodeUnauthorized).
			WithTextCode("INVALID_CREDENTIALS")
	case errors.Is(err, types.ErrUnknownAccount):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "credstore: ledger append rejected").
			WithCode(goerrors.CodeNotFound).
			WithTextCode("UNKNOWN_ACCOUNT")
	case errors.Is(err, types.ErrUsernameRequired),
		errors.Is(err, types.ErrPasswordRequired),
		errors.Is(err, types.ErrActionRequired),
		errors.Is(err, types.ErrAccountIDRequired):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "credstore: invalid input").
			WithCode(goerrors.CodeBadRequest).
			WithTextCode("INVALID_INPUT")
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "credstore: storage failure").
		WithCode(goerrors.CodeInternal).
		WithTextCode("STORAGE_ERROR")
}
