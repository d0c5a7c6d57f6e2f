package lib

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

func newLogHandler(logger *zerolog.Logger) slog.Handler {
	buf := &bytes.Buffer{}
	return &logHandler{
		logger:    logger,
		formatter: slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug, ReplaceAttr: dropTime}),
		output:    buf,
		mu:        &sync.Mutex{},
	}
}

// zerolog stamps its own time
func dropTime(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return attr
}

// logHandler lets the library log through slog while the command line
// decides levels and output through zerolog
type logHandler struct {
	logger    *zerolog.Logger
	formatter slog.Handler
	output    *bytes.Buffer
	mu        *sync.Mutex
}

// Enabled always returns true and lets zerolog decide
func (h *logHandler) Enabled(_ context.Context, level slog.Level) bool {
	return true
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &logHandler{
		logger:    h.logger,
		output:    h.output,
		formatter: h.formatter.WithAttrs(attrs),
		mu:        h.mu,
	}
}

func (h *logHandler) WithGroup(name string) slog.Handler {
	return &logHandler{
		logger:    h.logger,
		output:    h.output,
		formatter: h.formatter.WithGroup(name),
		mu:        h.mu,
	}
}

// Handle formats the record with slog's text handler and forwards the
// resulting line to zerolog at the matching level. The level= and msg= keys
// stay in the line; zerolog prints its own level too.
func (h *logHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.output.Reset()

	if err := h.formatter.Handle(ctx, r); err != nil {
		return err
	}
	msg := strings.TrimSpace(h.output.String())
	if msg == "" {
		msg = "<<logHandler received empty message>>"
	}
	h.logger.WithLevel(zerologLevel(r.Level)).Msg(msg)
	return nil
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level < slog.LevelInfo:
		return zerolog.DebugLevel
	case level < slog.LevelWarn:
		return zerolog.InfoLevel
	case level < slog.LevelError:
		return zerolog.WarnLevel
	}
	// anything past Error still gets logged
	return zerolog.ErrorLevel
}
