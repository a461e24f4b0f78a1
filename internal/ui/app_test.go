package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jswitzer/pulse/internal/connect"
	"github.com/jswitzer/pulse/internal/state"
)

func TestNewDefaults(t *testing.T) {
	m := New(Options{})
	if m.theme.Name != "Dracula" {
		t.Fatalf("theme = %q, want Dracula", m.theme.Name)
	}
	if m.units != "metric" {
		t.Fatalf("units = %q, want metric", m.units)
	}
	if m.currentView != ViewOverview {
		t.Fatalf("currentView = %v, want overview", m.currentView)
	}
}

func TestNewRejectsUnknownUnits(t *testing.T) {
	m := New(Options{Units: "furlongs"})
	if m.units != "metric" {
		t.Fatalf("units = %q, want metric fallback", m.units)
	}
}

func TestShiftDayBackAndForward(t *testing.T) {
	m := New(Options{})
	m.snapshot = state.Snapshot{Date: "2026-08-10"}

	next, _ := m.shiftDay(-1)
	m = next.(Model)
	if m.viewDate != "2026-08-09" {
		t.Fatalf("viewDate = %q, want 2026-08-09", m.viewDate)
	}

	// Moving forward past the store's date snaps back to live tracking.
	next, _ = m.shiftDay(1)
	m = next.(Model)
	if m.viewDate != "" {
		t.Fatalf("viewDate = %q, want empty (tracking store)", m.viewDate)
	}
}

func TestActivitySelectionClamps(t *testing.T) {
	m := New(Options{})
	m.snapshot = state.Snapshot{Activities: []connect.Activity{
		{ActivityID: 1}, {ActivityID: 2},
	}}
	m.currentView = ViewActivities

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	for range 5 {
		next, _ := m.handleKey(down)
		m = next.(Model)
	}
	if m.selectedRow != 1 {
		t.Fatalf("selectedRow = %d, want clamped to 1", m.selectedRow)
	}

	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	for range 5 {
		next, _ := m.handleKey(up)
		m = next.(Model)
	}
	if m.selectedRow != 0 {
		t.Fatalf("selectedRow = %d, want clamped to 0", m.selectedRow)
	}
}

func TestTabSwitchesViews(t *testing.T) {
	m := New(Options{})
	tab := tea.KeyMsg{Type: tea.KeyTab}

	next, _ := m.handleKey(tab)
	m = next.(Model)
	if m.currentView != ViewActivities {
		t.Fatalf("currentView = %v, want activities", m.currentView)
	}
	next, _ = m.handleKey(tab)
	m = next.(Model)
	if m.currentView != ViewOverview {
		t.Fatalf("currentView = %v, want overview", m.currentView)
	}
}
