package state

import (
	"errors"
	"testing"
	"time"

	"github.com/jswitzer/pulse/internal/connect"
	"github.com/jswitzer/pulse/internal/report"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	health := &report.Snapshot{Date: "2026-03-14"}
	activities := []connect.Activity{{ActivityID: 1}, {ActivityID: 2}}

	before := time.Now()
	s.Update("2026-03-14", health, activities, nil)

	snap := s.Snapshot()
	if snap.Date != "2026-03-14" || snap.Health == nil {
		t.Fatalf("snapshot = %#v, want health for 2026-03-14", snap)
	}
	if len(snap.Activities) != 2 || snap.Activities[0].ActivityID != 1 {
		t.Fatalf("snapshot activities = %#v, want 2 items", snap.Activities)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Activities[0].ActivityID = 999
	snap2 := s.Snapshot()
	if snap2.Activities[0].ActivityID != 1 {
		t.Fatalf("Snapshot should clone activities; got id %d want 1", snap2.Activities[0].ActivityID)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update("2026-03-14", &report.Snapshot{Date: "2026-03-14"}, []connect.Activity{{ActivityID: 1}}, nil)

	before := time.Now()
	s.Update("", nil, nil, errors.New("boom"))

	snap := s.Snapshot()
	if snap.Health == nil || snap.Date != "2026-03-14" {
		t.Fatalf("health dropped on error: %#v", snap)
	}
	if len(snap.Activities) != 1 {
		t.Fatalf("activities dropped on error: %#v", snap.Activities)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestSnapshot_IsOffline(t *testing.T) {
	var s Store
	s.Update("", nil, nil, errors.New("down"))
	if s.Snapshot().IsOffline() {
		t.Fatal("one failure should not count as offline")
	}
	s.Update("", nil, nil, errors.New("down"))
	if !s.Snapshot().IsOffline() {
		t.Fatal("two failures should count as offline")
	}
}
