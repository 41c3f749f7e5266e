package mock

import (
	"context"

	"github.com/MelvilleC99/profiler"
)

var _ profiler.Completer = (*Completer)(nil)

// Completer is a mock implementation of profiler.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, req profiler.CompletionRequest) (string, error)
}

func (c *Completer) Complete(ctx context.Context, req profiler.CompletionRequest) (string, error) {
	return c.CompleteFn(ctx, req)
}
