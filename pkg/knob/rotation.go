package knob

import (
	"math"
	"time"
)

// DefaultRotationDuration is how long an animated transition takes.
const DefaultRotationDuration = 200 * time.Millisecond

// Keyframe is one angle the rotation passes through at a fraction of its duration.
type Keyframe struct {
	Time  float64
	Angle float64
}

// Rotation animates the knob from one angle to another.
//
// A plain tween would take the shortest path, which is wrong for a knob that
// cannot turn through its bottom. Instead the rotation passes through the
// midpoint of the two angles: ease-in from the old angle to the midpoint,
// then ease-out to the new angle.
type Rotation struct {
	Keyframes [3]Keyframe
	Duration  time.Duration
}

// NewRotation builds the rotation for a transition. A non-animated
// transition yields a rotation that is done immediately.
func NewRotation(tr Transition, d time.Duration) Rotation {
	if !tr.Animated {
		d = 0
	}

	return Rotation{
		Keyframes: [3]Keyframe{
			{Time: 0, Angle: tr.OldAngle},
			{Time: 0.5, Angle: (tr.OldAngle + tr.NewAngle) / 2},
			{Time: 1, Angle: tr.NewAngle},
		},
		Duration: d,
	}
}

// Target returns the angle the rotation ends at.
func (r Rotation) Target() float64 {
	return r.Keyframes[2].Angle
}

// Done reports whether the rotation has finished after elapsed.
func (r Rotation) Done(elapsed time.Duration) bool {
	return elapsed >= r.Duration
}

// At returns the angle after elapsed.
func (r Rotation) At(elapsed time.Duration) float64 {
	if r.Done(elapsed) {
		return r.Target()
	}

	if elapsed <= 0 {
		return r.Keyframes[0].Angle
	}

	progress := float64(elapsed) / float64(r.Duration)

	from, to := r.Keyframes[0], r.Keyframes[1]
	curve := easeIn
	if progress >= to.Time {
		from, to = r.Keyframes[1], r.Keyframes[2]
		curve = easeOut
	}

	local := (progress - from.Time) / (to.Time - from.Time)

	return from.Angle + (to.Angle-from.Angle)*curve.at(local)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// timingCurve is a cubic Bézier timing function anchored at (0,0) and (1,1).
type timingCurve struct {
	x1, y1, x2, y2 float64
}

var (
	easeIn  = timingCurve{x1: 0.42, y1: 0, x2: 1, y2: 1}
	easeOut = timingCurve{x1: 0, y1: 0, x2: 0.58, y2: 1}
)

// at maps input progress x in [0,1] to output progress.
func (c timingCurve) at(x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	}

	return bezier(c.solve(x), c.y1, c.y2)
}

// solve finds the curve parameter whose x coordinate is x. Newton's method
// converges in a few steps for these curves; bisection covers the flat spots.
func (c timingCurve) solve(x float64) float64 {
	const epsilon = 1e-7

	s := x
	for range 8 {
		err := bezier(s, c.x1, c.x2) - x
		if math.Abs(err) < epsilon {
			return s
		}

		d := bezierSlope(s, c.x1, c.x2)
		if math.Abs(d) < 1e-6 {
			break
		}

		s -= err / d
	}

	lo, hi := 0.0, 1.0
	s = x

	for lo < hi {
		v := bezier(s, c.x1, c.x2)
		if math.Abs(v-x) < epsilon {
			return s
		}

		if v < x {
			lo = s
		} else {
			hi = s
		}

		if hi-lo < epsilon {
			break
		}

		s = (lo + hi) / 2
	}

	return s
}

// bezier evaluates one coordinate of a cubic Bézier with endpoints 0 and 1.
func bezier(s, p1, p2 float64) float64 {
	inv := 1 - s

	return 3*inv*inv*s*p1 + 3*inv*s*s*p2 + s*s*s
}

func bezierSlope(s, p1, p2 float64) float64 {
	inv := 1 - s

	return 3*inv*inv*p1 + 6*inv*s*(p2-p1) + 3*s*s*(1-p2)
}
