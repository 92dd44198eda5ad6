package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// CLI defines the knob command structure.
type CLI struct {
	// Default command (runs when no subcommand given)
	Run RunCmd `cmd:"" default:"withargs" help:"Launch the terminal knob, optionally mirrored over HTTP"`

	Map    MapCmd    `cmd:"" help:"Print the value to angle table for a knob configuration"`
	Preset PresetCmd `cmd:"" help:"Validate a preset and print it with defaults filled in"`
}

func main() {
	// Set up text-based logger for CLI output; run replaces it with a file logger.
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("knob"),
		kong.Description("A rotary knob control for the terminal."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}

// fail wraps a setup error with the step that failed.
func fail(step string, err error) error {
	return fmt.Errorf("failed to %s: %w", step, err)
}
