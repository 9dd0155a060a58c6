// Package testutil holds helpers shared by package tests.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger routes catalog, executor and shell events into t.Log at
// Debug level. Timestamps are dropped so lines read the same across runs.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return NewTestLoggerAt(t, slog.LevelDebug)
}

// NewTestLoggerAt is NewTestLogger with a minimum level.
func NewTestLoggerAt(t testing.TB, level slog.Level) *slog.Logger {
	t.Helper()
	h := slog.NewTextHandler(tbWriter{tb: t}, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(h)
}

// tbWriter hands each formatted record to t.Log, one call per line.
type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
