package knob

import (
	"fmt"
	"log/slog"
	"math"
)

// Touch is one pointer sample delivered by the host toolkit.
// TapCount is 1 for a single tap, 2 for a double tap, and so on.
type Touch struct {
	Point    Point
	TapCount int
}

// Snapshot is a read-only copy of the tracker state.
type Snapshot struct {
	Value       float64 `json:"value"`
	Angle       float64 `json:"angle"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Default     float64 `json:"default"`
	Style       Style   `json:"style"`
	Continuous  bool    `json:"continuous"`
	Highlighted bool    `json:"highlighted"`
	Tracking    bool    `json:"tracking"`
}

// Tracker is the touch-tracking state machine behind a knob.
//
// It is not safe for concurrent use. The host drives it from a single event
// goroutine: Begin, any number of Continue calls, then exactly one of End or
// Cancel.
type Tracker struct {
	cfg     Config
	pending *Config
	bounds  Bounds
	obs     Observer
	logger  *slog.Logger

	value    float64
	angle    float64
	reported float64

	tracking    bool
	highlighted bool
	canReset    bool // false while dragging
	origin      Point
	last        Point
}

// Option customizes a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for gesture diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithBounds sets the initial widget bounds.
func WithBounds(b Bounds) Option {
	return func(t *Tracker) {
		t.bounds = b
	}
}

// WithValue sets the initial value instead of the configured default.
func WithValue(v float64) Option {
	return func(t *Tracker) {
		t.value = v
	}
}

// New creates a tracker. The observer may be nil.
func New(cfg Config, obs Observer, opts ...Option) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if obs == nil {
		obs = Observers(nil)
	}

	t := &Tracker{
		cfg:    cfg,
		obs:    obs,
		logger: slog.Default(),
		value:  cfg.Default,
	}

	for _, opt := range opts {
		opt(t)
	}

	if math.IsNaN(t.value) {
		return nil, fmt.Errorf("%w: initial value is NaN", ErrInvalidConfig)
	}

	t.value = cfg.ClampValue(t.value)
	t.angle = cfg.AngleForValue(t.value)
	t.reported = t.value
	t.obs.Transition(Transition{OldAngle: t.angle, NewAngle: t.angle})

	return t, nil
}

// Config returns the active configuration.
func (t *Tracker) Config() Config { return t.cfg }

// Bounds returns the widget bounds used for hit testing.
func (t *Tracker) Bounds() Bounds { return t.bounds }

// SetBounds updates the widget bounds after a layout change.
func (t *Tracker) SetBounds(b Bounds) { t.bounds = b }

// Value returns the current value.
func (t *Tracker) Value() float64 { return t.value }

// Angle returns the current angle. While a rotating gesture is in progress
// this is the bearing of the last accepted touch.
func (t *Tracker) Angle() float64 { return t.angle }

// Highlighted reports whether a gesture is holding the knob.
func (t *Tracker) Highlighted() bool { return t.highlighted }

// Tracking reports whether a gesture is in progress.
func (t *Tracker) Tracking() bool { return t.tracking }

// Read returns the current value.
func (t *Tracker) Read() float64 { return t.value }

// Range returns the configured value bounds.
func (t *Tracker) Range() (lo, hi float64) { return t.cfg.Min, t.cfg.Max }

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Value:       t.value,
		Angle:       t.angle,
		Min:         t.cfg.Min,
		Max:         t.cfg.Max,
		Default:     t.cfg.Default,
		Style:       t.cfg.Style,
		Continuous:  t.cfg.Continuous,
		Highlighted: t.highlighted,
		Tracking:    t.tracking,
	}
}

// Configure replaces the configuration. While a gesture is in progress the
// new configuration is held back and applied when the gesture ends.
func (t *Tracker) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if t.tracking {
		t.pending = &cfg

		return nil
	}

	t.apply(cfg)

	return nil
}

// SetValue sets the value programmatically, clamping it to [Min, Max].
// It requests a transition but does not report a value change.
func (t *Tracker) SetValue(v float64, animated bool) {
	if math.IsNaN(v) {
		t.logger.Debug("knob ignored NaN value")

		return
	}

	t.setValue(v, animated)
	t.angle = t.cfg.AngleForValue(t.value)
	t.reported = t.value
}

// SetAngle sets the value that corresponds to angle.
func (t *Tracker) SetAngle(angle float64, animated bool) {
	if math.IsNaN(angle) {
		t.logger.Debug("knob ignored NaN angle")

		return
	}

	t.SetValue(t.cfg.ValueForAngle(t.cfg.ClampAngle(angle)), animated)
}

// Reset returns the knob to its default value.
func (t *Tracker) Reset(animated bool) {
	t.SetValue(t.cfg.Default, animated)
}

// Begin starts a gesture. It returns false when the touch is rejected or a
// gesture is already in progress; the state is unchanged in that case.
func (t *Tracker) Begin(tc Touch) bool {
	if t.tracking {
		t.logger.Debug("knob ignored touch: gesture in progress")

		return false
	}

	p := tc.Point

	if t.cfg.Style == Rotating {
		if t.cfg.ShouldIgnoreTouch(p, t.bounds) {
			t.logger.Debug("knob rejected touch", "x", p.X, "y", p.Y)

			return false
		}

		t.angle = t.cfg.AngleBetween(t.bounds.Center(), p)
	} else {
		t.origin = p
		t.angle = t.cfg.AngleForValue(t.value)
	}

	t.tracking = true
	t.highlighted = true
	t.canReset = false
	t.last = p

	return true
}

// Continue feeds a pointer move. It returns whether the move changed the
// value; in continuous mode an accepted move is reported immediately.
func (t *Tracker) Continue(tc Touch) bool {
	if !t.tracking {
		return false
	}

	accepted := t.update(tc)
	if accepted && t.cfg.Continuous {
		t.report()
	}

	return accepted
}

// End finishes the gesture. A nil touch means the pointer was lost, in which
// case the last known point is replayed. The final value is always reported.
func (t *Tracker) End(tc *Touch) {
	if !t.tracking {
		return
	}

	t.highlighted = false

	// A reset is only allowed once dragging has stopped.
	t.canReset = true

	if tc != nil {
		t.update(*tc)
	} else {
		t.update(Touch{Point: t.last})
	}

	t.finish()
	t.report()
}

// Cancel abandons the gesture without reporting a value.
func (t *Tracker) Cancel() {
	if !t.tracking {
		return
	}

	t.logger.Debug("knob gesture cancelled", "value", t.value)

	t.highlighted = false
	t.finish()
}

// update applies one pointer sample and reports whether it changed the value
// through normal position handling.
func (t *Tracker) update(tc Touch) bool {
	if tc.TapCount > 1 && t.cfg.ResetsToDefault && t.canReset {
		t.logger.Debug("knob reset to default", "default", t.cfg.Default)
		t.setValue(t.cfg.Default, true)

		return false
	}

	p := tc.Point

	if t.cfg.Style != Rotating {
		t.last = p
		t.setValue(t.cfg.ValueForPosition(p, t.origin, t.angle), false)

		return true
	}

	if t.cfg.ShouldIgnoreTouch(p, t.bounds) {
		return false
	}

	t.last = p

	newAngle := t.cfg.AngleBetween(t.bounds.Center(), p)
	delta := newAngle - t.angle
	t.angle = newAngle

	if math.Abs(delta) > jumpThreshold {
		t.logger.Debug("knob dropped angle jump", "delta", delta)

		return false
	}

	t.setValue(t.value+(t.cfg.Max-t.cfg.Min)*delta/(t.cfg.MaxAngle*2), true)

	return true
}

func (t *Tracker) setValue(v float64, animated bool) {
	old := t.value
	t.value = t.cfg.ClampValue(v)

	t.obs.Transition(Transition{
		OldAngle: t.cfg.AngleForValue(old),
		NewAngle: t.cfg.AngleForValue(t.value),
		Animated: animated,
	})
}

func (t *Tracker) report() {
	vc := ValueChange{Old: t.reported, New: t.value}
	t.reported = t.value
	t.obs.ValueChanged(vc)
}

// finish leaves the tracking state and applies a held-back configuration.
func (t *Tracker) finish() {
	t.tracking = false
	t.angle = t.cfg.AngleForValue(t.value)

	if t.pending != nil {
		cfg := *t.pending
		t.pending = nil
		t.apply(cfg)
	}
}

func (t *Tracker) apply(cfg Config) {
	oldAngle := t.cfg.AngleForValue(t.value)

	t.cfg = cfg
	t.value = cfg.ClampValue(t.value)
	t.angle = cfg.AngleForValue(t.value)

	t.obs.Transition(Transition{OldAngle: oldAngle, NewAngle: t.angle})
}
