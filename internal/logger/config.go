package logger

import (
	"fmt"
	"io"
	"strings"
)

// ParseLevel parses level string to Level enum
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown level: %s", levelStr)
	}
}

// ParseFormat parses format string to Format enum
func ParseFormat(formatStr string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(formatStr)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "color", "colored":
		return FormatColor, nil
	default:
		return FormatText, fmt.Errorf("unknown format: %s", formatStr)
	}
}

// NewFromStrings builds a logger from textual level and format settings
func NewFromStrings(level, format string, out io.Writer) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	fmtKind, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("parse format: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Level = lvl
	cfg.Format = fmtKind
	if out != nil {
		cfg.Output = out
	}
	return New(cfg), nil
}
