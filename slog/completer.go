package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/MelvilleC99/profiler"
)

// Ensure LoggingCompleter implements profiler.Completer.
var _ profiler.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with per-call logging.
type LoggingCompleter struct {
	next   profiler.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a LoggingCompleter around next.
func NewLoggingCompleter(next profiler.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer, logging prompt and response
// sizes with duration.
func (c *LoggingCompleter) Complete(ctx context.Context, req profiler.CompletionRequest) (string, error) {
	start := time.Now()
	out, err := c.next.Complete(ctx, req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("complete",
			slog.Int("prompt_bytes", len(req.Prompt)),
			slog.Duration("duration", duration),
			slog.String("err", err.Error()))
		return "", err
	}

	c.logger.Info("complete",
		slog.Int("prompt_bytes", len(req.Prompt)),
		slog.Int("response_bytes", len(out)),
		slog.Duration("duration", duration))
	return out, nil
}
