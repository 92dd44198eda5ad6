// Package history keeps a bounded record of recent knob values.
package history

import (
	"context"
	"sync"

	"github.com/alkime/knob/internal/feed"
)

// Ring is a thread-safe circular buffer of values.
// It has one writer and any number of readers.
type Ring struct {
	values []float64
	head   int // next write position
	count  int // valid values, up to capacity
	mu     sync.RWMutex
}

// NewRing creates a ring holding up to capacity values.
func NewRing(capacity int) *Ring {
	return &Ring{
		values: make([]float64, max(capacity, 1)),
	}
}

// Write appends values, overwriting the oldest when full.
func (r *Ring) Write(values ...float64) {
	if len(values) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	capacity := len(r.values)

	for _, v := range values {
		r.values[r.head] = v
		r.head = (r.head + 1) % capacity

		if r.count < capacity {
			r.count++
		}
	}
}

// Last returns up to n most recent values, oldest first.
func (r *Ring) Last(n int) []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 || n <= 0 {
		return nil
	}

	n = min(n, r.count)
	capacity := len(r.values)

	// head is the next write position, so the newest n start at head-n
	start := (r.head - n + capacity) % capacity

	out := make([]float64, n)
	for i := range out {
		out[i] = r.values[(start+i)%capacity]
	}

	return out
}

// Read returns every stored value, oldest first.
func (r *Ring) Read() []float64 {
	return r.Last(r.Capacity())
}

// Count returns the number of stored values.
func (r *Ring) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.count
}

// Capacity returns the maximum number of stored values.
func (r *Ring) Capacity() int {
	return len(r.values)
}

// Follow records knob values from events until ctx is done or events is
// closed. Committed values and state snapshots are recorded; transitions
// are not.
func Follow(ctx context.Context, r *Ring, events <-chan feed.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}

			switch {
			case ev.Kind == feed.KindValueChanged && ev.Change != nil:
				r.Write(ev.Change.New)
			case ev.Kind == feed.KindState && ev.State != nil:
				r.Write(ev.State.Value)
			}
		}
	}
}
