package main

import (
	"github.com/alkime/knob/internal/config"
	"github.com/alkime/knob/pkg/knob"
)

// KnobFlags are the knob settings shared by every command. A flag that is
// set overrides the same key in the preset file.
type KnobFlags struct {
	Preset string `flag:"" optional:"" help:"YAML knob preset"`

	Style             string   `flag:"" optional:"" help:"Interaction style (rotating, horizontal, vertical)"`
	Min               *float64 `flag:"" help:"Minimum value"`
	Max               *float64 `flag:"" help:"Maximum value"`
	Default           *float64 `flag:"" help:"Value restored by a double click"`
	Value             *float64 `flag:"" help:"Initial value"`
	MaxAngle          *float64 `flag:"" help:"Rotation either side of the top, in degrees"`
	ScalingFactor     *float64 `flag:"" help:"Degrees per point of slider movement"`
	MinDistance       *float64 `flag:"" help:"Dead zone radius around the center, in points"`
	ResetsToDefault   *bool    `flag:"" help:"Double click resets to the default (use =false to disable)"`
	Continuous        *bool    `flag:"" help:"Report values while dragging (use =false to disable)"`
	CircularTouchZone *bool    `flag:"" help:"Ignore presses outside the knob circle"`
}

// resolve loads the preset, applies flag overrides and validates the result.
func (f KnobFlags) resolve() (knob.Config, float64, error) {
	var preset config.Preset

	if f.Preset != "" {
		p, err := config.LoadPreset(f.Preset)
		if err != nil {
			return knob.Config{}, 0, err
		}

		preset = p
	}

	overrides := config.Preset{
		Min:               f.Min,
		Max:               f.Max,
		Default:           f.Default,
		Value:             f.Value,
		MaxAngle:          f.MaxAngle,
		ScalingFactor:     f.ScalingFactor,
		MinDistance:       f.MinDistance,
		ResetsToDefault:   f.ResetsToDefault,
		Continuous:        f.Continuous,
		CircularTouchZone: f.CircularTouchZone,
	}

	if f.Style != "" {
		s, err := knob.ParseStyle(f.Style)
		if err != nil {
			return knob.Config{}, 0, err
		}

		overrides.Style = &s
	}

	return preset.Merge(overrides).KnobConfig()
}
