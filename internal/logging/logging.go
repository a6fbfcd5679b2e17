// Package logging builds the process logger from config.
package logging

import (
	"io"
	"log/slog"

	"github.com/rickgao/notepad-sync/internal/config"
)

// New returns a slog logger writing to w at the configured level and format.
// Unknown levels fall back to info; Validate rejects them earlier.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
