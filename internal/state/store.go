package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/jswitzer/pulse/internal/connect"
	"github.com/jswitzer/pulse/internal/report"
)

// Snapshot represents the latest data available to the dashboard.
type Snapshot struct {
	Date                string
	Health              *report.Snapshot
	Activities          []connect.Activity
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot between the poller
// and the dashboard.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(date string, health *report.Snapshot, activities []connect.Activity, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Date = date
	s.snapshot.Health = health
	s.snapshot.Activities = cloneActivities(activities)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Activities = cloneActivities(s.snapshot.Activities)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneActivities(items []connect.Activity) []connect.Activity {
	if len(items) == 0 {
		return nil
	}
	dup := make([]connect.Activity, len(items))
	copy(dup, items)
	return dup
}
