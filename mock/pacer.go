package mock

import (
	"context"

	"github.com/MelvilleC99/profiler"
)

var _ profiler.Pacer = (*Pacer)(nil)

// Pacer is a mock implementation of profiler.Pacer.
type Pacer struct {
	WaitFn func(ctx context.Context, host string) error
}

func (p *Pacer) Wait(ctx context.Context, host string) error {
	if p.WaitFn == nil {
		return nil
	}
	return p.WaitFn(ctx, host)
}
