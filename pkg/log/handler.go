package log

import (
	"io"
	"log/slog"
	"strings"
)

// NewHandlerTo builds the process log handler, json or text.
func NewHandlerTo(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}

func ParseLevel(s string) slog.Level {
	var l slog.Level

	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}

	return l
}
