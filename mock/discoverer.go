package mock

import (
	"context"

	"github.com/MelvilleC99/profiler"
)

var _ profiler.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer is a mock implementation of profiler.LinkDiscoverer.
type LinkDiscoverer struct {
	DiscoverFn func(html, baseURL string) ([]string, error)
}

func (d *LinkDiscoverer) Discover(html, baseURL string) ([]string, error) {
	return d.DiscoverFn(html, baseURL)
}

var _ profiler.SitemapDiscoverer = (*SitemapDiscoverer)(nil)

// SitemapDiscoverer is a mock implementation of profiler.SitemapDiscoverer.
type SitemapDiscoverer struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (d *SitemapDiscoverer) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return d.DiscoverURLsFn(ctx, baseURL)
}
