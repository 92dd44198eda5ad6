package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/alkime/knob/pkg/collections"
	"github.com/alkime/knob/pkg/knob"
)

// MapCmd prints how values map to knob angles.
type MapCmd struct {
	KnobFlags `embed:""`

	Steps int `flag:"" default:"11" help:"Number of rows, spread evenly over the value range"`
}

type mapRow struct {
	value, angle, back float64
}

// Run executes the map command.
func (c *MapCmd) Run() error {
	cfg, _, err := c.resolve()
	if err != nil {
		return fail("resolve knob configuration", err)
	}

	rows := collections.Apply(collections.Linspace(cfg.Min, cfg.Max, c.Steps), func(v float64) mapRow {
		angle := cfg.AngleForValue(v)
		return mapRow{value: v, angle: angle, back: cfg.ValueForAngle(angle)}
	})

	return writeMap(os.Stdout, cfg, rows)
}

func writeMap(out io.Writer, cfg knob.Config, rows []mapRow) error {
	fmt.Fprintf(out, "style %s, range [%g, %g], default %g, max angle %g\n\n",
		cfg.Style, cfg.Min, cfg.Max, cfg.Default, cfg.MaxAngle)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "value\tangle\tround trip\t")

	for _, r := range rows {
		fmt.Fprintf(tw, "%.4g\t%.2f°\t%.4g\t\n", r.value, r.angle, r.back)
	}

	return tw.Flush()
}
