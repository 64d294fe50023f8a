// Package activity provides default persistence helpers for the go-credstore
// ActivitySink. The Repository implements both the sink (writes) and the
// ActivityRepository read-side contract so hosts can record account lifecycle
// events and later query them for audit views. The ledger is append-only: the
// repository deliberately exposes no update or delete operations.
package activity
