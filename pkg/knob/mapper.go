package knob

import "math"

// Angles are in degrees. 0 is the top of the knob, positive angles are to
// the right (clockwise) and negative angles to the left. The usable range is
// [-MaxAngle, +MaxAngle].

// jumpThreshold is the largest angle change a single rotating update may
// apply. Anything bigger is a wraparound across the bottom of the knob or
// the dead zone.
const jumpThreshold = 45.0

// Point is a position in the widget's own coordinate space, y growing downwards.
type Point struct {
	X, Y float64
}

// Bounds is the size of the widget.
type Bounds struct {
	Width, Height float64
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Point {
	return Point{X: b.Width / 2, Y: b.Height / 2}
}

// Radius returns the radius of the largest circle that fits the bounds.
func (b Bounds) Radius() float64 {
	return math.Min(b.Width, b.Height) / 2
}

// AngleForValue maps a value in [Min, Max] to an angle in [-MaxAngle, MaxAngle].
func (c Config) AngleForValue(value float64) float64 {
	return ((value-c.Min)/(c.Max-c.Min) - 0.5) * (c.MaxAngle * 2)
}

// ValueForAngle is the inverse of AngleForValue.
func (c Config) ValueForAngle(angle float64) float64 {
	return (angle/(c.MaxAngle*2)+0.5)*(c.Max-c.Min) + c.Min
}

// ClampAngle limits angle to [-MaxAngle, MaxAngle].
func (c Config) ClampAngle(angle float64) float64 {
	return clamp(angle, -c.MaxAngle, c.MaxAngle)
}

// ClampValue limits value to [Min, Max].
func (c Config) ClampValue(value float64) float64 {
	return clamp(value, c.Min, c.Max)
}

// AngleBetween returns the clamped bearing from center to point.
func (c Config) AngleBetween(center, point Point) float64 {
	return c.ClampAngle(Bearing(center, point))
}

// ValueForPosition computes the slider-style value for point, given the
// gesture origin and the angle the knob had when the gesture began.
func (c Config) ValueForPosition(point, origin Point, angle float64) float64 {
	var delta float64
	if c.Style == SliderVertical {
		delta = origin.Y - point.Y
	} else {
		delta = point.X - origin.X
	}

	return c.ValueForAngle(c.ClampAngle(delta*c.ScalingFactor + angle))
}

// ShouldIgnoreTouch reports whether a rotating touch at point is too close to
// the center, or outside the bounding circle when CircularTouchZone is set.
func (c Config) ShouldIgnoreTouch(point Point, bounds Bounds) bool {
	dist := squaredDistance(bounds.Center(), point)
	if dist < c.MinDistance*c.MinDistance {
		return true
	}

	if c.CircularTouchZone {
		r := bounds.Radius()
		if dist > r*r {
			return true
		}
	}

	return false
}

// Bearing is the unclamped angle from center to point, in [-180, 180].
// The atan2 arguments are swapped because 0 points up and y grows down.
func Bearing(center, point Point) float64 {
	return math.Atan2(point.X-center.X, center.Y-point.Y) * 180 / math.Pi
}

func squaredDistance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y

	return dx*dx + dy*dy
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
