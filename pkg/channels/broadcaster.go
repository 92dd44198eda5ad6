package channels

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// subscriber holds a channel and how to deliver to it.
type subscriber[T any] struct {
	name     string
	ch       chan<- T
	timeout  time.Duration // zero means non-blocking
	inactive atomic.Bool
	dropped  atomic.Int32
}

func (s *subscriber[T]) send(msg T) {
	if s.inactive.Load() {
		s.dropped.Add(1)
		return
	}

	var err error
	if s.timeout > 0 {
		err = SendWithTimeout(s.ch, msg, s.timeout)
	} else {
		err = SendNonBlock(s.ch, msg)
	}

	if err != nil {
		// a closed channel never comes back
		s.dropped.Add(1)
		if errors.Is(err, ErrChannelClosed) {
			s.inactive.Store(true)
		}
	}
}

// SubscribeOption customizes a single subscription.
type SubscribeOption func(*subscriberOptions) error

type subscriberOptions struct {
	name    string
	timeout time.Duration
}

// WithName labels the subscriber in Stats.
func WithName(name string) SubscribeOption {
	return func(o *subscriberOptions) error {
		o.name = name
		return nil
	}
}

// WithTimeout makes sends to the subscriber wait up to d before dropping.
func WithTimeout(d time.Duration) SubscribeOption {
	return func(o *subscriberOptions) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		o.timeout = d
		return nil
	}
}

// Broadcaster copies every message from its input channel to all subscriber
// channels.
//
// Slow subscribers never hold up the others: by default a message is dropped
// for a subscriber whose channel is full, or after WithTimeout expires.
// A subscriber whose channel gets closed is marked inactive and skipped.
//
// Cancelling the context passed to Run closes the input; messages already
// queued are still delivered before Wait returns.
type Broadcaster[T any] struct {
	mu          sync.Mutex
	subscribers []*subscriber[T]
	input       chan T
	started     atomic.Bool
	wg          sync.WaitGroup
}

// NewBroadcaster creates an idle Broadcaster.
func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{}
}

// Subscribe registers ch to receive every broadcast message.
// Must be called before Run.
func (b *Broadcaster[T]) Subscribe(ch chan<- T, opts ...SubscribeOption) error {
	if ch == nil {
		return errors.New("subscriber channel cannot be nil")
	}

	var o subscriberOptions
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started.Load() {
		return ErrBroadcasterStarted
	}

	if o.name == "" {
		o.name = fmt.Sprintf("subscriber-%d", len(b.subscribers))
	}

	b.subscribers = append(b.subscribers, &subscriber[T]{
		name:    o.name,
		ch:      ch,
		timeout: o.timeout,
	})

	return nil
}

// Run starts delivering and returns the input channel. The input channel is
// owned by the Broadcaster and is closed when ctx is done; do not send on it
// after that.
//
// The input is buffered with room for depth messages per subscriber.
func (b *Broadcaster[T]) Run(ctx context.Context, depth int) (chan<- T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started.Load() {
		return nil, ErrBroadcasterStarted
	}

	if len(b.subscribers) == 0 {
		return nil, errors.New("no subscribers available")
	}

	b.input = make(chan T, len(b.subscribers)*max(depth, 1))
	subs := b.subscribers

	b.wg.Go(func() {
		for msg := range b.input {
			for _, s := range subs {
				s.send(msg)
			}
		}
	})

	b.started.Store(true)

	go func() {
		<-ctx.Done()
		close(b.input)
	}()

	return b.input, nil
}

// Wait blocks until the input has been closed and drained.
// It is safe to call from multiple goroutines.
func (b *Broadcaster[T]) Wait() {
	b.wg.Wait()
}

// SubscriberStats describes delivery to one subscriber.
type SubscriberStats struct {
	Name     string `json:"name"`
	Dropped  int    `json:"dropped"`
	Inactive bool   `json:"inactive"`
}

// Stats reports delivery counters in subscription order.
func (b *Broadcaster[T]) Stats() []SubscriberStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := make([]SubscriberStats, 0, len(b.subscribers))
	for _, s := range b.subscribers {
		stats = append(stats, SubscriberStats{
			Name:     s.name,
			Dropped:  int(s.dropped.Load()),
			Inactive: s.inactive.Load(),
		})
	}

	return stats
}
