// Package logging builds the process logger: JSON to stdout, optionally
// mirrored to a rotating file, with credentials masked.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/madhava-poojari/mentorship-api/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns the logger and a closer for its file output, if any.
func New(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		w, err := NewRotatingWriter(RotationConfig{
			File:      cfg.LogFile,
			MaxSizeMB: cfg.LogMaxSizeMB,
			MaxFiles:  cfg.LogMaxFiles,
		})
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(os.Stdout, w)
		closer = w
	}
	return NewWithWriter(out, ParseLevel(cfg.LogLevel)), closer, nil
}

func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewRedactingHandler(handler))
}

func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
