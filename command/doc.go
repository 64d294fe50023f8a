// Package command exposes go-command compatible command handlers implementing
// the credential store operations (register, authenticate, ledger append).
// Commands are wired by the service layer and can be invoked by any transport.
package command
