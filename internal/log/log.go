// Package log sets up the default slog logger.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const timeFormat = "15:04:05.000"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ParseLevel parses a log level name.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace", "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "critical":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Setup installs a tint handler writing to w as the default logger.
func Setup(level slog.Level, w io.Writer, color string) error {
	disable, err := noColor(w, color)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: timeFormat,
		NoColor:    disable,
	})))
	return nil
}

func noColor(w io.Writer, color string) (bool, error) {
	switch color {
	case ColorAlways:
		return false, nil
	case ColorNever:
		return true, nil
	case ColorAuto, "":
		f, ok := w.(*os.File)
		if !ok {
			return true, nil
		}
		return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return true, fmt.Errorf("unknown color mode %q", color)
}
