package knob

import "time"

const (
	multiClickTime     = 400 * time.Millisecond
	multiClickDistance = 1 // cells, Manhattan
)

type cell struct {
	X, Y int
}

func (c cell) distance(o cell) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// clickTracker turns terminal presses, which carry no tap count, into
// counted taps. The count wraps back to 1 after 3.
type clickTracker struct {
	maxTime     time.Duration
	maxDistance int

	lastPos   cell
	lastTime  time.Time
	lastCount int
}

func newClickTracker(maxTime time.Duration, maxDistance int) *clickTracker {
	return &clickTracker{
		maxTime:     maxTime,
		maxDistance: maxDistance,
	}
}

// record registers a press and returns its tap count.
func (t *clickTracker) record(pos cell, at time.Time) int {
	if t.continues(pos, at) {
		t.lastCount++
		if t.lastCount > 3 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}

	t.lastPos = pos
	t.lastTime = at

	return t.lastCount
}

func (t *clickTracker) continues(pos cell, at time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}

	// negative elapsed means the clock went backwards
	elapsed := at.Sub(t.lastTime)
	if elapsed < 0 || elapsed > t.maxTime {
		return false
	}

	return pos.distance(t.lastPos) <= t.maxDistance
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
