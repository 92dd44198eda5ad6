package feed

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/alkime/knob/pkg/channels"
	"github.com/alkime/knob/pkg/knob"
)

// Publisher is a knob.Observer that forwards every callback as an Event.
//
// Sends never block: the publisher runs on the UI goroutine, so an event
// that does not fit in out is dropped and counted.
type Publisher struct {
	out     chan<- Event
	store   *Store
	logger  *slog.Logger
	now     func() time.Time
	dropped atomic.Int64
}

// NewPublisher creates a publisher sending on out and keeping store current.
func NewPublisher(out chan<- Event, store *Store, logger *slog.Logger) *Publisher {
	return &Publisher{
		out:    out,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ValueChanged implements knob.Observer.
func (p *Publisher) ValueChanged(vc knob.ValueChange) {
	p.publish(Event{
		Kind:   KindValueChanged,
		At:     p.now(),
		Change: &Change{Old: vc.Old, New: vc.New},
	})
}

// Transition implements knob.Observer.
func (p *Publisher) Transition(tr knob.Transition) {
	p.publish(Event{
		Kind:       KindTransition,
		At:         p.now(),
		Transition: &Transition{OldAngle: tr.OldAngle, NewAngle: tr.NewAngle, Animated: tr.Animated},
	})
}

// Sync records snap in the store. A change to anything other than the value
// and angle, which travel as their own events, is published as a state event.
func (p *Publisher) Sync(snap knob.Snapshot) {
	old := p.store.Set(snap)
	if settings(old) == settings(snap) {
		return
	}

	p.publish(StateEvent(snap, p.now()))
}

// Dropped returns how many events did not fit in the output channel.
func (p *Publisher) Dropped() int64 {
	return p.dropped.Load()
}

func (p *Publisher) publish(ev Event) {
	if err := channels.SendNonBlock(p.out, ev); err != nil {
		n := p.dropped.Add(1)
		p.logger.Debug("Dropped knob event", "kind", ev.Kind, "error", err, "dropped", n)
	}
}

func settings(s knob.Snapshot) knob.Snapshot {
	s.Value = 0
	s.Angle = 0

	return s
}
