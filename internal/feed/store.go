package feed

import (
	"sync"

	"github.com/alkime/knob/pkg/knob"
)

// Store holds the latest knob snapshot for readers on other goroutines.
// The zero value is ready to use.
type Store struct {
	mu   sync.RWMutex
	snap knob.Snapshot
}

// Set replaces the snapshot and returns the previous one.
func (s *Store) Set(snap knob.Snapshot) knob.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.snap
	s.snap = snap

	return old
}

// Snapshot returns the latest snapshot.
func (s *Store) Snapshot() knob.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap
}

// Read returns the latest value.
func (s *Store) Read() float64 {
	return s.Snapshot().Value
}

// Range returns the latest value bounds.
func (s *Store) Range() (lo, hi float64) {
	snap := s.Snapshot()

	return snap.Min, snap.Max
}
