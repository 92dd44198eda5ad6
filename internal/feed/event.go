// Package feed turns knob callbacks into timestamped events for consumers
// outside the UI goroutine.
package feed

import (
	"time"

	"github.com/alkime/knob/pkg/knob"
)

// Kind identifies the payload of an Event.
type Kind string

const (
	KindValueChanged Kind = "value_changed"
	KindTransition   Kind = "transition"
	KindState        Kind = "state"
)

// Change is the payload of a KindValueChanged event.
type Change struct {
	Old float64 `json:"old"`
	New float64 `json:"new"`
}

// Transition is the payload of a KindTransition event.
type Transition struct {
	OldAngle float64 `json:"old_angle"`
	NewAngle float64 `json:"new_angle"`
	Animated bool    `json:"animated"`
}

// Event is one knob notification. Exactly one payload is set, matching Kind.
type Event struct {
	Kind       Kind           `json:"kind"`
	At         time.Time      `json:"at"`
	Change     *Change        `json:"change,omitempty"`
	Transition *Transition    `json:"transition,omitempty"`
	State      *knob.Snapshot `json:"state,omitempty"`
}

// StateEvent wraps a snapshot.
func StateEvent(s knob.Snapshot, at time.Time) Event {
	return Event{Kind: KindState, At: at, State: &s}
}
