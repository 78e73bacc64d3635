package state

import "sync"

// SelectedDate is the date the user is currently viewing, shared between
// the UI (which changes it) and the background poller (which refreshes it).
type SelectedDate struct {
	mu   sync.RWMutex
	date string
}

// NewSelectedDate starts at the given YYYY-MM-DD date.
func NewSelectedDate(date string) *SelectedDate {
	return &SelectedDate{date: date}
}

// Get returns the current selection.
func (s *SelectedDate) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.date
}

// Set replaces the current selection.
func (s *SelectedDate) Set(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.date = date
}
