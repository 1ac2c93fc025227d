package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// Supported output formats for New.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatZerolog = "zerolog"
	FormatZap     = "zap"
)

// New builds a Logger writing to w in the requested format at the requested
// level ("debug", "info", "warn", "error").
func New(format, level string, w io.Writer) (Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))), nil
	case FormatJSON:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))), nil
	case FormatZerolog:
		zl := zerolog.New(w).Level(toZerologLevel(lvl)).With().Timestamp().Logger()
		return NewZerologLogger(zl), nil
	case FormatZap:
		return NewZapLogger(newZapJSON(w, lvl)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

func toZerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l <= slog.LevelDebug:
		return zerolog.DebugLevel
	case l <= slog.LevelInfo:
		return zerolog.InfoLevel
	case l <= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
