// Package channels holds small helpers for fanning values out over Go channels.
package channels

import (
	"errors"
)

var (
	ErrChannelClosed  = errors.New("channel closed")
	ErrChannelTimeout = errors.New("send timeout")
	ErrChannelFull    = errors.New("channel full")

	// ErrBroadcasterStarted is returned when subscribing to or running a
	// broadcaster that is already running.
	ErrBroadcasterStarted = errors.New("broadcaster already started")
)
