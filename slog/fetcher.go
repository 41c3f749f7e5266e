// Package slog provides logging decorators for the pipeline's interfaces,
// built on the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/MelvilleC99/profiler"
)

// Ensure LoggingFetcher implements profiler.Fetcher.
var _ profiler.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-fetch logging.
type LoggingFetcher struct {
	next   profiler.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a LoggingFetcher around next.
func NewLoggingFetcher(next profiler.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher, logging the outcome with size and
// duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*profiler.PageResult, error) {
	start := time.Now()
	page, err := f.next.Fetch(ctx, url)
	duration := time.Since(start)

	if err != nil {
		f.logger.Error("fetch",
			slog.String("url", url),
			slog.Duration("duration", duration),
			slog.String("err", err.Error()))
		return nil, err
	}

	f.logger.Info("fetch",
		slog.String("url", url),
		slog.Int("status", page.StatusCode),
		slog.Bool("ok", page.OK),
		slog.Int("bytes", len(page.HTML)),
		slog.Duration("duration", duration))
	return page, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
