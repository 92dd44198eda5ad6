package logger

import (
	"io"
	"log/slog"

	"github.com/alkime/knob/internal/config"
)

// SetupLogger configures structured logging based on environment.
// The terminal UI owns stdout, so callers pass the destination.
func SetupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if cfg.Env == config.EnvDevelopment {
		logLevel = slog.LevelDebug
	}
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}

	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler).With("service", "knob")

	slog.SetDefault(logger)

	return logger
}
