package mock

import (
	"context"

	"github.com/MelvilleC99/profiler"
)

var _ profiler.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of profiler.ArtifactWriter.
type ArtifactWriter struct {
	WriteRawHTMLFn   func(ctx context.Context, jobID, pageURL, html string) error
	WriteAggregateFn func(ctx context.Context, jobID, text string) error
	WriteProfileFn   func(ctx context.Context, jobID string, p *profiler.Profile) error
}

func (w *ArtifactWriter) WriteRawHTML(ctx context.Context, jobID, pageURL, html string) error {
	return w.WriteRawHTMLFn(ctx, jobID, pageURL, html)
}

func (w *ArtifactWriter) WriteAggregate(ctx context.Context, jobID, text string) error {
	return w.WriteAggregateFn(ctx, jobID, text)
}

func (w *ArtifactWriter) WriteProfile(ctx context.Context, jobID string, p *profiler.Profile) error {
	return w.WriteProfileFn(ctx, jobID, p)
}
