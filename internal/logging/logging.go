// Package logging configures the process-wide slog logger for the tbl CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup configures the default slog logger with a text handler.
// Debug enables LevelDebug; otherwise the level is Info. A nil writer
// falls back to os.Stderr.
func Setup(debug bool, w io.Writer) {
	slog.SetDefault(slog.New(slog.NewTextHandler(target(w), options(debug))))
}

// SetupJSON configures the default slog logger with a JSON handler,
// for machine-readable logs. Level handling matches Setup.
func SetupJSON(debug bool, w io.Writer) {
	slog.SetDefault(slog.New(slog.NewJSONHandler(target(w), options(debug))))
}

func target(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

func options(debug bool) *slog.HandlerOptions {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

// Component returns the default logger scoped with a component attribute.
// Long-running subsystems (the REPL, the MCP server) use it so their
// records can be filtered apart.
func Component(name string) *slog.Logger {
	return slog.Default().With("component", name)
}
