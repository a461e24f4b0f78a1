// Package ui implements the Bubble Tea dashboard. It renders the health
// snapshot and recent activities held by the state store, supports browsing
// earlier days, and persists theme changes back to the preferences file.
package ui
