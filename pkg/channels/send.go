package channels

import "time"

// SendNonBlock attempts to send a message without blocking.
// Returns ErrChannelFull or ErrChannelClosed when the message was not sent.
func SendNonBlock[T any](ch chan<- T, msg T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrChannelClosed
		}
	}()

	select {
	case ch <- msg:
		return nil
	default:
		return ErrChannelFull
	}
}

// SendWithTimeout sends a message, giving up after timeout.
func SendWithTimeout[T any](ch chan<- T, msg T, timeout time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrChannelClosed
		}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ch <- msg:
		return nil
	case <-timer.C:
		return ErrChannelTimeout
	}
}

// ReceiveAll collects messages from ch until it is closed, until nothing
// arrives for idle, or until limit messages were read. A limit of 0 means
// no limit.
func ReceiveAll[T any](ch <-chan T, idle time.Duration, limit int) []T {
	var out []T

	timer := time.NewTimer(idle)
	defer timer.Stop()

	for limit == 0 || len(out) < limit {
		select {
		case msg, ok := <-ch:
			if !ok {
				return out
			}

			out = append(out, msg)
			timer.Reset(idle)
		case <-timer.C:
			return out
		}
	}

	return out
}
