package main

import (
	"os"

	"github.com/alkime/knob/internal/config"
)

// PresetCmd validates a preset and prints the fully resolved version.
type PresetCmd struct {
	KnobFlags `embed:""`
}

// Run executes the preset command.
func (c *PresetCmd) Run() error {
	cfg, value, err := c.resolve()
	if err != nil {
		return fail("resolve knob configuration", err)
	}

	return config.PresetFromConfig(cfg, value).Encode(os.Stdout)
}
