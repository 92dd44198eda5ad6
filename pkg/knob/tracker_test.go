package knob_test

import (
	"math"
	"testing"

	"github.com/alkime/knob/pkg/knob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square = knob.Bounds{Width: 100, Height: 100}

type recorder struct {
	changes     []knob.ValueChange
	transitions []knob.Transition
}

func (r *recorder) ValueChanged(vc knob.ValueChange) { r.changes = append(r.changes, vc) }
func (r *recorder) Transition(tr knob.Transition)    { r.transitions = append(r.transitions, tr) }

func (r *recorder) lastTransition(t *testing.T) knob.Transition {
	t.Helper()
	require.NotEmpty(t, r.transitions)

	return r.transitions[len(r.transitions)-1]
}

// at returns the point at the given bearing, 40 points from the center of square.
func at(deg float64) knob.Point {
	rad := knob.Radians(deg)

	return knob.Point{X: 50 + 40*math.Sin(rad), Y: 50 - 40*math.Cos(rad)}
}

func touch(p knob.Point) knob.Touch {
	return knob.Touch{Point: p, TapCount: 1}
}

func newTracker(t *testing.T, cfg knob.Config, opts ...knob.Option) (*knob.Tracker, *recorder) {
	t.Helper()

	rec := &recorder{}
	tr, err := knob.New(cfg, rec, append([]knob.Option{knob.WithBounds(square)}, opts...)...)
	require.NoError(t, err)

	return tr, rec
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("starts at default", func(t *testing.T) {
		t.Parallel()

		tr, rec := newTracker(t, rangeConfig(10, 30))

		assert.Equal(t, 20.0, tr.Value())
		assert.InDelta(t, 0, tr.Angle(), tolerance)
		require.Len(t, rec.transitions, 1)
		assert.False(t, rec.transitions[0].Animated)
		assert.Empty(t, rec.changes)
	})

	t.Run("clamps initial value", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTracker(t, knob.DefaultConfig(), knob.WithValue(7))
		assert.Equal(t, 1.0, tr.Value())
		assert.InDelta(t, 135, tr.Angle(), tolerance)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		t.Parallel()

		cfg := knob.DefaultConfig()
		cfg.Max = cfg.Min

		_, err := knob.New(cfg, nil)
		require.ErrorIs(t, err, knob.ErrInvalidConfig)
	})

	t.Run("rejects NaN value", func(t *testing.T) {
		t.Parallel()

		_, err := knob.New(knob.DefaultConfig(), nil, knob.WithValue(math.NaN()))
		require.ErrorIs(t, err, knob.ErrInvalidConfig)
	})
}

func TestTracker_DeadZone(t *testing.T) {
	t.Parallel()

	tr, rec := newTracker(t, knob.DefaultConfig())

	assert.False(t, tr.Begin(touch(knob.Point{X: 51, Y: 51})))
	assert.False(t, tr.Tracking())
	assert.False(t, tr.Highlighted())

	assert.True(t, tr.Begin(touch(knob.Point{X: 50, Y: 60})))
	assert.True(t, tr.Tracking())
	assert.True(t, tr.Highlighted())
	assert.Equal(t, 0.5, tr.Value(), "begin does not move the value")
	assert.Empty(t, rec.changes)
}

func TestTracker_DeadZoneDuringDrag(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, knob.DefaultConfig())

	require.True(t, tr.Begin(touch(at(0))))
	assert.False(t, tr.Continue(touch(knob.Point{X: 50, Y: 51})))
	assert.Equal(t, 0.5, tr.Value())
	assert.InDelta(t, 0, tr.Angle(), tolerance)
}

func TestTracker_CircularTouchZone(t *testing.T) {
	t.Parallel()

	cfg := knob.DefaultConfig()
	corner := touch(knob.Point{X: 2, Y: 2})

	tr, _ := newTracker(t, cfg)
	assert.True(t, tr.Begin(corner))

	cfg.CircularTouchZone = true
	tr, _ = newTracker(t, cfg)
	assert.False(t, tr.Begin(corner))
	assert.True(t, tr.Begin(touch(at(90))))
}

func TestTracker_BeginWhileTracking(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, knob.DefaultConfig())

	require.True(t, tr.Begin(touch(at(0))))
	assert.False(t, tr.Begin(touch(at(10))))
	assert.True(t, tr.Tracking())
}

func TestTracker_Rotating(t *testing.T) {
	t.Parallel()

	tr, rec := newTracker(t, rangeConfig(10, 30))

	require.True(t, tr.Begin(touch(at(0))))
	assert.True(t, tr.Continue(touch(at(22.5))))
	assert.True(t, tr.Continue(touch(at(45))))
	assert.True(t, tr.Continue(touch(at(67.5))))

	assert.InDelta(t, 25, tr.Value(), 1e-6)
	require.Len(t, rec.changes, 3)
	assert.InDelta(t, 20, rec.changes[0].Old, 1e-6)
	assert.InDelta(t, 25, rec.changes[2].New, 1e-6)
	assert.True(t, rec.lastTransition(t).Animated)

	tr.End(&knob.Touch{Point: at(67.5), TapCount: 1})

	require.Len(t, rec.changes, 4)
	assert.InDelta(t, 25, rec.changes[3].Old, 1e-6)
	assert.InDelta(t, 25, rec.changes[3].New, 1e-6)
	assert.False(t, tr.Tracking())
	assert.False(t, tr.Highlighted())
	assert.InDelta(t, 67.5, tr.Angle(), 1e-6)
}

func TestTracker_RelativeRotation(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, knob.DefaultConfig())

	// Grabbing the knob away from its indicator does not move the value.
	require.True(t, tr.Begin(touch(at(90))))
	assert.Equal(t, 0.5, tr.Value())

	assert.True(t, tr.Continue(touch(at(117))))
	assert.InDelta(t, 0.6, tr.Value(), 1e-6)
}

func TestTracker_JumpGuard(t *testing.T) {
	t.Parallel()

	tr, rec := newTracker(t, knob.DefaultConfig())

	require.True(t, tr.Begin(touch(at(0))))
	assert.False(t, tr.Continue(touch(at(50))))

	assert.Equal(t, 0.5, tr.Value())
	assert.Empty(t, rec.changes)
	assert.InDelta(t, 50, tr.Angle(), 1e-6, "the new bearing becomes the reference")

	// The next small move is relative to the bearing that was dropped.
	assert.True(t, tr.Continue(touch(at(77))))
	assert.InDelta(t, 0.6, tr.Value(), 1e-6)
}

func TestTracker_WraparoundAcrossBottom(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, knob.DefaultConfig())

	require.True(t, tr.Begin(touch(at(130))))
	// Crossing the bottom flips the bearing from +135 to -135.
	assert.False(t, tr.Continue(touch(at(-170))))
	assert.Equal(t, 0.5, tr.Value())
}

func TestTracker_NonContinuous(t *testing.T) {
	t.Parallel()

	cfg := knob.DefaultConfig()
	cfg.Continuous = false

	tr, rec := newTracker(t, cfg)

	require.True(t, tr.Begin(touch(at(0))))
	assert.True(t, tr.Continue(touch(at(10))))
	assert.True(t, tr.Continue(touch(at(20))))
	assert.True(t, tr.Continue(touch(at(30))))
	assert.Empty(t, rec.changes)

	tr.End(&knob.Touch{Point: at(30), TapCount: 1})

	require.Len(t, rec.changes, 1)
	assert.Equal(t, 0.5, rec.changes[0].Old)
	assert.InDelta(t, 0.5+30.0/270, rec.changes[0].New, 1e-6)
}

func TestTracker_EndWithoutTouch(t *testing.T) {
	t.Parallel()

	cfg := knob.DefaultConfig()
	cfg.Style = knob.SliderHorizontal
	cfg.Continuous = false

	tr, rec := newTracker(t, cfg)

	require.True(t, tr.Begin(touch(knob.Point{X: 10, Y: 10})))
	require.True(t, tr.Continue(touch(knob.Point{X: 37, Y: 10})))

	tr.End(nil)

	require.Len(t, rec.changes, 1)
	assert.InDelta(t, 0.6, rec.changes[0].New, 1e-6)
	assert.InDelta(t, 0.6, tr.Value(), 1e-6)
}

func TestTracker_DoubleTapReset(t *testing.T) {
	t.Parallel()

	t.Run("resets after release", func(t *testing.T) {
		t.Parallel()

		tr, rec := newTracker(t, knob.DefaultConfig(), knob.WithValue(0.8))

		require.True(t, tr.Begin(touch(at(0))))
		tr.End(&knob.Touch{Point: at(0), TapCount: 1})
		assert.InDelta(t, 0.8, tr.Value(), 1e-9)

		require.True(t, tr.Begin(knob.Touch{Point: at(0), TapCount: 2}))
		tr.End(&knob.Touch{Point: at(0), TapCount: 2})

		assert.Equal(t, 0.5, tr.Value())
		last := rec.lastTransition(t)
		assert.True(t, last.Animated)
		assert.InDelta(t, 81, last.OldAngle, 1e-6)
		assert.InDelta(t, 0, last.NewAngle, 1e-6)

		require.NotEmpty(t, rec.changes)
		vc := rec.changes[len(rec.changes)-1]
		assert.InDelta(t, 0.8, vc.Old, 1e-9)
		assert.Equal(t, 0.5, vc.New)
	})

	t.Run("no reset while dragging", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTracker(t, knob.DefaultConfig())

		require.True(t, tr.Begin(knob.Touch{Point: at(0), TapCount: 2}))
		assert.True(t, tr.Continue(knob.Touch{Point: at(27), TapCount: 2}))
		assert.InDelta(t, 0.6, tr.Value(), 1e-6)
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		cfg := knob.DefaultConfig()
		cfg.ResetsToDefault = false

		tr, _ := newTracker(t, cfg, knob.WithValue(0.8))

		require.True(t, tr.Begin(knob.Touch{Point: at(0), TapCount: 2}))
		tr.End(&knob.Touch{Point: at(0), TapCount: 2})
		assert.InDelta(t, 0.8, tr.Value(), 1e-9)
	})
}

func TestTracker_Sliders(t *testing.T) {
	t.Parallel()

	t.Run("horizontal", func(t *testing.T) {
		t.Parallel()

		cfg := knob.DefaultConfig()
		cfg.Style = knob.SliderHorizontal

		tr, rec := newTracker(t, cfg)

		// Slider gestures are accepted anywhere, even on the center.
		require.True(t, tr.Begin(touch(knob.Point{X: 50, Y: 50})))

		assert.True(t, tr.Continue(touch(knob.Point{X: 77, Y: 90})))
		assert.InDelta(t, 0.6, tr.Value(), 1e-9)
		assert.False(t, rec.lastTransition(t).Animated)

		assert.True(t, tr.Continue(touch(knob.Point{X: 50, Y: 0})))
		assert.InDelta(t, 0.5, tr.Value(), 1e-9)

		assert.True(t, tr.Continue(touch(knob.Point{X: 5000, Y: 50})))
		assert.Equal(t, 1.0, tr.Value())

		tr.End(nil)
		assert.Equal(t, 1.0, tr.Value())
	})

	t.Run("vertical", func(t *testing.T) {
		t.Parallel()

		cfg := knob.DefaultConfig()
		cfg.Style = knob.SliderVertical

		tr, _ := newTracker(t, cfg)

		require.True(t, tr.Begin(touch(knob.Point{X: 10, Y: 50})))

		assert.True(t, tr.Continue(touch(knob.Point{X: 10, Y: 23})))
		assert.InDelta(t, 0.6, tr.Value(), 1e-9)

		assert.True(t, tr.Continue(touch(knob.Point{X: 10, Y: 77})))
		assert.InDelta(t, 0.4, tr.Value(), 1e-9)
	})

	t.Run("scaling factor", func(t *testing.T) {
		t.Parallel()

		cfg := knob.DefaultConfig()
		cfg.Style = knob.SliderHorizontal
		cfg.ScalingFactor = 2

		tr, _ := newTracker(t, cfg)

		require.True(t, tr.Begin(touch(knob.Point{X: 0, Y: 0})))
		assert.True(t, tr.Continue(touch(knob.Point{X: 27, Y: 0})))
		assert.InDelta(t, 0.7, tr.Value(), 1e-9)
	})

	t.Run("relative to start value", func(t *testing.T) {
		t.Parallel()

		cfg := knob.DefaultConfig()
		cfg.Style = knob.SliderHorizontal

		tr, _ := newTracker(t, cfg, knob.WithValue(0.2))

		require.True(t, tr.Begin(touch(knob.Point{X: 0, Y: 0})))
		assert.True(t, tr.Continue(touch(knob.Point{X: 27, Y: 0})))
		assert.InDelta(t, 0.3, tr.Value(), 1e-9)
	})
}

func TestTracker_Cancel(t *testing.T) {
	t.Parallel()

	cfg := knob.DefaultConfig()
	cfg.Continuous = false

	tr, rec := newTracker(t, cfg)

	require.True(t, tr.Begin(touch(at(0))))
	require.True(t, tr.Continue(touch(at(27))))

	tr.Cancel()

	assert.Empty(t, rec.changes)
	assert.False(t, tr.Tracking())
	assert.False(t, tr.Highlighted())
	assert.InDelta(t, 0.6, tr.Value(), 1e-6)
	assert.InDelta(t, tr.Config().AngleForValue(tr.Value()), tr.Angle(), 1e-9)

	// Cancel and End outside a gesture are no-ops.
	tr.Cancel()
	tr.End(nil)
	assert.Empty(t, rec.changes)
}

func TestTracker_SetValue(t *testing.T) {
	t.Parallel()

	tr, rec := newTracker(t, knob.DefaultConfig())

	tr.SetValue(5, true)
	assert.Equal(t, 1.0, tr.Value())
	assert.InDelta(t, 135, tr.Angle(), tolerance)
	assert.Empty(t, rec.changes)

	last := rec.lastTransition(t)
	assert.True(t, last.Animated)
	assert.InDelta(t, 0, last.OldAngle, tolerance)
	assert.InDelta(t, 135, last.NewAngle, tolerance)

	n := len(rec.transitions)
	tr.SetValue(math.NaN(), false)
	assert.Equal(t, 1.0, tr.Value())
	assert.Len(t, rec.transitions, n)

	tr.SetAngle(-67.5, false)
	assert.InDelta(t, 0.25, tr.Value(), tolerance)

	tr.Reset(false)
	assert.Equal(t, 0.5, tr.Value())
}

func TestTracker_ValueChangedOldIsLastReported(t *testing.T) {
	t.Parallel()

	tr, rec := newTracker(t, knob.DefaultConfig())

	tr.SetValue(0.2, false)

	require.True(t, tr.Begin(touch(at(0))))
	require.True(t, tr.Continue(touch(at(27))))

	require.Len(t, rec.changes, 1)
	assert.InDelta(t, 0.2, rec.changes[0].Old, 1e-9)
	assert.InDelta(t, 0.3, rec.changes[0].New, 1e-6)
}

func TestTracker_Configure(t *testing.T) {
	t.Parallel()

	t.Run("applies immediately when idle", func(t *testing.T) {
		t.Parallel()

		tr, rec := newTracker(t, knob.DefaultConfig(), knob.WithValue(0.9))

		cfg := knob.DefaultConfig()
		cfg.Max = 0.4
		cfg.Default = 0.2
		require.NoError(t, tr.Configure(cfg))

		assert.Equal(t, 0.4, tr.Value())
		assert.InDelta(t, 135, tr.Angle(), tolerance)
		assert.Empty(t, rec.changes)
	})

	t.Run("deferred while tracking", func(t *testing.T) {
		t.Parallel()

		tr, rec := newTracker(t, knob.DefaultConfig())

		require.True(t, tr.Begin(touch(at(0))))

		cfg := knob.DefaultConfig()
		cfg.Max = 0.4
		cfg.Default = 0.2
		require.NoError(t, tr.Configure(cfg))
		assert.Equal(t, 1.0, tr.Config().Max)

		tr.End(&knob.Touch{Point: at(0), TapCount: 1})

		assert.Equal(t, 0.4, tr.Config().Max)
		assert.Equal(t, 0.4, tr.Value())
		require.NotEmpty(t, rec.changes)
		assert.Equal(t, 0.4, rec.changes[len(rec.changes)-1].New)
	})

	t.Run("applied on cancel", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTracker(t, knob.DefaultConfig())

		require.True(t, tr.Begin(touch(at(0))))

		cfg := knob.DefaultConfig()
		cfg.Style = knob.SliderVertical
		require.NoError(t, tr.Configure(cfg))

		tr.Cancel()
		assert.Equal(t, knob.SliderVertical, tr.Config().Style)
	})

	t.Run("rejects invalid", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTracker(t, knob.DefaultConfig())

		cfg := knob.DefaultConfig()
		cfg.MaxAngle = 0
		require.ErrorIs(t, tr.Configure(cfg), knob.ErrInvalidConfig)
		assert.Equal(t, 135.0, tr.Config().MaxAngle)
	})
}

func TestTracker_Snapshot(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, rangeConfig(10, 30))
	require.True(t, tr.Begin(touch(at(45))))

	snap := tr.Snapshot()
	assert.Equal(t, 20.0, snap.Value)
	assert.Equal(t, 10.0, snap.Min)
	assert.Equal(t, 30.0, snap.Max)
	assert.Equal(t, knob.Rotating, snap.Style)
	assert.True(t, snap.Tracking)
	assert.True(t, snap.Highlighted)

	lo, hi := tr.Range()
	assert.Equal(t, 10.0, lo)
	assert.Equal(t, 30.0, hi)
	assert.Equal(t, tr.Value(), tr.Read())
}
