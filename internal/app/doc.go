// Package app wires configuration, authentication, the Garmin Connect client,
// and the background poller together and hands the resulting state store to
// the TUI. It owns the application lifecycle: Run blocks until the UI exits or
// the context is cancelled.
package app
