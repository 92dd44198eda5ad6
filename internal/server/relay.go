package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/alkime/knob/internal/feed"
)

// transitionWindow is how long bursty transitions are coalesced, latest
// wins, before they reach websocket clients.
const transitionWindow = 50 * time.Millisecond

// Relay forwards knob events to every hub client until ctx is done or
// events is closed.
//
// Transitions arrive once per pointer move during a drag; they are rate
// limited to one per transitionWindow. Any other event flushes a pending
// transition first so clients see events in order.
func Relay(ctx context.Context, hub *Hub, events <-chan feed.Event, logger *slog.Logger) error {
	var (
		pending *feed.Event
		timer   *time.Timer
		timerC  <-chan time.Time
	)

	send := func(ev feed.Event) {
		typ, data := frame(ev)
		if typ == "" {
			return
		}

		msg, err := marshalEnvelope(typ, ev.At, data)
		if err != nil {
			logger.Warn("ws relay marshal failed", "error", err, "type", typ)
			return
		}

		hub.Broadcast(msg)
	}

	flush := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}

		if pending != nil {
			send(*pending)
			pending = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return nil

		case <-timerC:
			timer, timerC = nil, nil
			flush()

		case ev, ok := <-events:
			if !ok {
				flush()
				return nil
			}

			if ev.Kind == feed.KindTransition {
				pending = &ev
				if timer == nil {
					timer = time.NewTimer(transitionWindow)
					timerC = timer.C
				}

				continue
			}

			flush()
			send(ev)
		}
	}
}

// frame picks the envelope type and payload for an event.
func frame(ev feed.Event) (string, any) {
	switch {
	case ev.Kind == feed.KindValueChanged && ev.Change != nil:
		return "value_changed", ev.Change
	case ev.Kind == feed.KindTransition && ev.Transition != nil:
		return "transition", ev.Transition
	case ev.Kind == feed.KindState && ev.State != nil:
		return "state", ev.State
	default:
		return "", nil
	}
}
