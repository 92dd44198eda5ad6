package knob

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned when a Config violates its invariants.
var ErrInvalidConfig = errors.New("invalid knob config")

// Config is the configuration snapshot the tracker reads.
//
// A Config must pass Validate before it is used for mapping; the mapper
// methods divide by (Max - Min) and MaxAngle and do not guard against zero.
type Config struct {
	Style Style

	// ScalingFactor is how many degrees of rotation one point of slider
	// movement produces. Only used by the slider styles.
	ScalingFactor float64

	Min     float64
	Max     float64
	Default float64

	// MaxAngle is how far the knob can rotate to either side of the top, in degrees.
	MaxAngle float64

	// MinDistance is how far from the knob center a touch must be to be
	// recognized in rotating mode.
	MinDistance float64

	ResetsToDefault bool
	Continuous      bool

	// CircularTouchZone restricts rotating touches to the bounding circle.
	CircularTouchZone bool
}

// DefaultConfig returns the configuration a freshly created knob uses.
func DefaultConfig() Config {
	return Config{
		Style:             Rotating,
		ScalingFactor:     1,
		Min:               0,
		Max:               1,
		Default:           0.5,
		MaxAngle:          135,
		MinDistance:       4,
		ResetsToDefault:   true,
		Continuous:        true,
		CircularTouchZone: false,
	}
}

// Validate reports the first invariant the config violates.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"min":            c.Min,
		"max":            c.Max,
		"default":        c.Default,
		"max angle":      c.MaxAngle,
		"scaling factor": c.ScalingFactor,
		"min distance":   c.MinDistance,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, name)
		}
	}

	switch {
	case c.Min >= c.Max:
		return fmt.Errorf("%w: min %g must be less than max %g", ErrInvalidConfig, c.Min, c.Max)
	case c.MaxAngle <= 0:
		return fmt.Errorf("%w: max angle %g must be positive", ErrInvalidConfig, c.MaxAngle)
	case c.ScalingFactor <= 0:
		return fmt.Errorf("%w: scaling factor %g must be positive", ErrInvalidConfig, c.ScalingFactor)
	case c.MinDistance < 0:
		return fmt.Errorf("%w: min distance %g must not be negative", ErrInvalidConfig, c.MinDistance)
	case c.Default < c.Min || c.Default > c.Max:
		return fmt.Errorf("%w: default %g outside [%g, %g]", ErrInvalidConfig, c.Default, c.Min, c.Max)
	}

	if _, err := ParseStyle(c.Style.String()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}
