package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/tempohq/daybrief/internal/tempo"
)

// DaySnapshot is the latest data available to the UI for one selected date.
// Section pointers reference decoded records, which are immutable after
// decode; a nil section has not loaded yet.
type DaySnapshot struct {
	Date     string
	Briefing *tempo.DailyBriefing
	Timeline *tempo.Timeline
	Tasks    []tempo.Task
	Health   *tempo.HealthDay
	Week     *tempo.WeekReview

	// FromCache is true while the snapshot shows a cached payload awaiting
	// revalidation.
	FromCache           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple
// consecutive fetches.
func (s DaySnapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// HasData reports whether any section has content to render.
func (s DaySnapshot) HasData() bool {
	return s.Briefing != nil || s.Timeline != nil || s.Tasks != nil || s.Health != nil || s.Week != nil
}

// Store coordinates concurrent updates to the published snapshot. The
// loader is the only writer; the UI reads snapshots on its poll tick.
type Store struct {
	mu       sync.RWMutex
	snapshot DaySnapshot
}

// Publish replaces the published snapshot with day. A fresh (non-cache)
// publish resets the failure counter; a cache publish leaves it alone so an
// unreachable server still reads as offline.
func (s *Store) Publish(day DaySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day.Tasks = cloneTasks(day.Tasks)
	day.LastUpdated = time.Now()
	day.LastError = nil
	if day.FromCache {
		day.ConsecutiveFailures = s.snapshot.ConsecutiveFailures
	}
	s.snapshot = day
}

// PublishError records a fetch failure. Previously published data is kept;
// good cached content is never discarded on a transient failure.
func (s *Store) PublishError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() DaySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Tasks = cloneTasks(s.snapshot.Tasks)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneTasks(tasks []tempo.Task) []tempo.Task {
	if len(tasks) == 0 {
		return nil
	}
	dup := make([]tempo.Task, len(tasks))
	copy(dup, tasks)
	return dup
}
