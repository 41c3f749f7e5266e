package mock

import (
	"context"

	"github.com/MelvilleC99/profiler"
)

var _ profiler.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of profiler.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*profiler.PageResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*profiler.PageResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
