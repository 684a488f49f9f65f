package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default text handler used by the CLIs,
// at debug level when verbose is set.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
