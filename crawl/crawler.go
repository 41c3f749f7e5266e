// Package crawl orchestrates the profile pipeline: fetching a site's pages,
// aggregating their text and running extraction as a single job.
package crawl

import (
	"context"
	"net/url"

	"github.com/MelvilleC99/profiler"
)

// Crawler fetches a company homepage, discovers the profile-relevant
// internal pages and fetches those too, paced per host.
type Crawler struct {
	Fetcher    profiler.Fetcher
	Discoverer profiler.LinkDiscoverer
	Pacer      profiler.Pacer
	MaxPages   int

	// Sitemap, when set, is consulted if the homepage markup yields no
	// links. Optional.
	Sitemap profiler.SitemapDiscoverer
}

// Crawl fetches the homepage at target, discovers internal links and
// fetches each one. A homepage that cannot be fetched aborts the crawl with
// EUNAVAILABLE; internal page failures are recorded on their PageResult and
// the crawl continues.
func (c *Crawler) Crawl(ctx context.Context, target string) (*profiler.CrawlSet, error) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return nil, profiler.Errorf(profiler.EINVALID, "invalid URL %q", target)
	}

	set := &profiler.CrawlSet{}

	home := c.fetchPage(ctx, u.Host, target)
	set.Add(home)
	if !home.OK {
		return set, profiler.Errorf(profiler.EUNAVAILABLE, "homepage fetch failed for %s: %s", target, home.ErrMessage)
	}

	links, err := c.Discoverer.Discover(home.HTML, target)
	if err != nil {
		return set, err
	}
	if len(links) == 0 && c.Sitemap != nil {
		if links, err = c.Sitemap.DiscoverURLs(ctx, target); err != nil {
			return set, err
		}
	}

	limit := c.MaxPages
	if limit <= 0 {
		limit = profiler.MaxPages
	}
	for _, link := range links {
		if set.Len() >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return set, err
		}
		set.Add(c.fetchPage(ctx, u.Host, link))
	}

	return set, nil
}

// fetchPage runs one paced fetch, normalizing transport errors into a
// failed PageResult so the crawl loop has a single shape to deal with.
func (c *Crawler) fetchPage(ctx context.Context, host, target string) *profiler.PageResult {
	if c.Pacer != nil {
		if err := c.Pacer.Wait(ctx, host); err != nil {
			return &profiler.PageResult{URL: target, ErrMessage: err.Error()}
		}
	}

	page, err := c.Fetcher.Fetch(ctx, target)
	if err != nil {
		return &profiler.PageResult{URL: target, ErrMessage: profiler.ErrorMessage(err)}
	}
	return page
}
