package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/waitline/waitline/internal/queueapi"
)

// Snapshot represents the latest waitlist data available to the UI.
type Snapshot struct {
	Entries             []queueapi.QueueEntry
	LastUpdated         time.Time // time of the last successful reload
	LastError           error
	Loading             bool // a reload is in flight; mutation controls stay disabled
	Demo                bool // entries come from the built-in demo dataset
	ConsecutiveFailures int  // number of consecutive reload failures
}

// IsOffline returns true when the API has been unreachable for multiple
// reloads in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot. The entries are
// replaced wholesale on every successful reload; a failed reload keeps the
// previous (stale) entries and records the error.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous
// entries are kept but the error is recorded for visibility. LastUpdated
// only advances on success so the header never presents stale data as
// fresh.
func (s *Store) Update(entries []queueapi.QueueEntry, demo bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loading = false
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.LastUpdated = time.Now()
	s.snapshot.Entries = cloneEntries(entries)
	s.snapshot.Demo = demo
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// SetLoading flips the loading flag while a reload is in flight.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Loading = loading
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Entries = cloneEntries(s.snapshot.Entries)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneEntries(entries []queueapi.QueueEntry) []queueapi.QueueEntry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]queueapi.QueueEntry, len(entries))
	copy(dup, entries)
	return dup
}
