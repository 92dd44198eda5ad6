package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alkime/knob/pkg/knob"
	"gopkg.in/yaml.v3"
)

// Preset is a YAML knob configuration. Every key is optional; a missing key
// keeps the value from knob.DefaultConfig.
type Preset struct {
	Style             *knob.Style `yaml:"style,omitempty"`
	Min               *float64    `yaml:"min,omitempty"`
	Max               *float64    `yaml:"max,omitempty"`
	Default           *float64    `yaml:"default,omitempty"`
	Value             *float64    `yaml:"value,omitempty"`
	MaxAngle          *float64    `yaml:"max_angle,omitempty"`
	ScalingFactor     *float64    `yaml:"scaling_factor,omitempty"`
	MinDistance       *float64    `yaml:"min_distance,omitempty"`
	ResetsToDefault   *bool       `yaml:"resets_to_default,omitempty"`
	Continuous        *bool       `yaml:"continuous,omitempty"`
	CircularTouchZone *bool       `yaml:"circular_touch_zone,omitempty"`
}

// LoadPreset reads a preset file.
func LoadPreset(path string) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, fmt.Errorf("failed to open preset: %w", err)
	}
	defer f.Close()

	p, err := DecodePreset(f)
	if err != nil {
		return Preset{}, fmt.Errorf("preset %s: %w", path, err)
	}

	return p, nil
}

// DecodePreset parses a preset document. Unknown keys are rejected.
func DecodePreset(r io.Reader) (Preset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Preset
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Preset{}, fmt.Errorf("failed to decode preset: %w", err)
	}

	return p, nil
}

// Merge overlays the keys set in o onto p.
func (p Preset) Merge(o Preset) Preset {
	set(&p.Style, o.Style)
	set(&p.Min, o.Min)
	set(&p.Max, o.Max)
	set(&p.Default, o.Default)
	set(&p.Value, o.Value)
	set(&p.MaxAngle, o.MaxAngle)
	set(&p.ScalingFactor, o.ScalingFactor)
	set(&p.MinDistance, o.MinDistance)
	set(&p.ResetsToDefault, o.ResetsToDefault)
	set(&p.Continuous, o.Continuous)
	set(&p.CircularTouchZone, o.CircularTouchZone)

	return p
}

// KnobConfig resolves the preset against knob.DefaultConfig and validates it.
// The returned value is the preset's initial value, or the default.
func (p Preset) KnobConfig() (knob.Config, float64, error) {
	cfg := knob.DefaultConfig()

	get(&cfg.Style, p.Style)
	get(&cfg.Min, p.Min)
	get(&cfg.Max, p.Max)
	get(&cfg.MaxAngle, p.MaxAngle)
	get(&cfg.ScalingFactor, p.ScalingFactor)
	get(&cfg.MinDistance, p.MinDistance)
	get(&cfg.ResetsToDefault, p.ResetsToDefault)
	get(&cfg.Continuous, p.Continuous)
	get(&cfg.CircularTouchZone, p.CircularTouchZone)

	// A moved range without an explicit default centers the default.
	if p.Default != nil {
		cfg.Default = *p.Default
	} else if p.Min != nil || p.Max != nil {
		cfg.Default = cfg.Min + (cfg.Max-cfg.Min)/2
	}

	if err := cfg.Validate(); err != nil {
		return knob.Config{}, 0, err
	}

	value := cfg.Default
	get(&value, p.Value)

	return cfg, cfg.ClampValue(value), nil
}

// PresetFromConfig captures cfg and value as a fully populated preset.
func PresetFromConfig(cfg knob.Config, value float64) Preset {
	return Preset{
		Style:             &cfg.Style,
		Min:               &cfg.Min,
		Max:               &cfg.Max,
		Default:           &cfg.Default,
		Value:             &value,
		MaxAngle:          &cfg.MaxAngle,
		ScalingFactor:     &cfg.ScalingFactor,
		MinDistance:       &cfg.MinDistance,
		ResetsToDefault:   &cfg.ResetsToDefault,
		Continuous:        &cfg.Continuous,
		CircularTouchZone: &cfg.CircularTouchZone,
	}
}

// Encode writes the preset as YAML.
func (p Preset) Encode(w io.Writer) error {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}

	_, err := w.Write(buf.Bytes())

	return err
}

func set[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func get[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
