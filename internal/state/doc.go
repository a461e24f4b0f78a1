// Package state provides the thread-safe store shared by the dashboard's
// background poller and its UI.
//
// The Store follows a producer-consumer pattern: the poller calls Update
// after each refresh of the day's health snapshot and activity list, and the
// UI calls Snapshot on its own schedule. Updates are atomic, readers get
// copies, and a failed poll records its error while keeping the most recent
// successful data so the dashboard never goes blank.
//
// The zero value is ready to use.
package state
