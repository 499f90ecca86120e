package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is usable before Init so library code and tests never hit a nil logger;
// Init replaces it with the level configured from the environment.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init configures the package-global JSON logger. Level comes from LOG_LEVEL
// (debug/info/warn/error), defaulting to info.
func Init() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
