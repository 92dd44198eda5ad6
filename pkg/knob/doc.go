// Package knob implements the gesture handling behind a rotary knob control.
//
// A knob maps a bounded value to a bounded rotation. The Config carries the
// value range and the rotation range and provides the pure mapping between
// them. A Tracker interprets a stream of pointer events in one of three
// interaction styles (rotating, horizontal slider, vertical slider), rejects
// touches that are too close to the pivot, drops wraparound jumps, and resets
// to the default value on a double tap.
//
// The package has no rendering dependency. Hosts feed pointer events into the
// Tracker and receive its decisions through an Observer: value changes to
// forward to the application, and transitions to animate with NewRotation.
package knob
