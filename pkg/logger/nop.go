package logger

import (
	"io"
	"log/slog"
)

// NewNop returns a logger that discards everything.
func NewNop() *Impl {
	return &Impl{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
