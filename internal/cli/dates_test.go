package cli

import (
	"testing"
	"time"
)

func TestDefaultDateIsYesterday(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if got := defaultDate(now); got != "2026-02-28" {
		t.Fatalf("defaultDate = %q, want 2026-02-28", got)
	}
}

func TestResolveDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	got, err := resolveDate("", now)
	if err != nil || got != "2026-02-28" {
		t.Fatalf("resolveDate(empty) = %q, %v", got, err)
	}

	got, err = resolveDate("2026-01-15", now)
	if err != nil || got != "2026-01-15" {
		t.Fatalf("resolveDate(explicit) = %q, %v", got, err)
	}

	if _, err := resolveDate("15/01/2026", now); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestRangeFromFlags(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	start, end, err := rangeFromFlags(7, "", "", now)
	if err != nil {
		t.Fatalf("rangeFromFlags: %v", err)
	}
	if start != "2026-03-03" || end != "2026-03-09" {
		t.Fatalf("range = %s..%s, want 2026-03-03..2026-03-09", start, end)
	}

	start, end, err = rangeFromFlags(0, "2026-01-01", "2026-01-31", now)
	if err != nil || start != "2026-01-01" || end != "2026-01-31" {
		t.Fatalf("explicit range = %s..%s, %v", start, end, err)
	}

	if _, _, err := rangeFromFlags(0, "2026-01-01", "", now); err == nil {
		t.Fatal("expected error for start without end")
	}
	if _, _, err := rangeFromFlags(0, "2026-02-01", "2026-01-01", now); err == nil {
		t.Fatal("expected error for inverted range")
	}
}
