// Package etree implements sitemap-based link discovery using the
// beevik/etree XML library.
package etree

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MelvilleC99/profiler"
	"github.com/beevik/etree"
)

var _ profiler.SitemapDiscoverer = (*Discoverer)(nil)

// maxSitemaps caps how many sitemap documents a single discovery will
// follow through <sitemapindex> references.
const maxSitemaps = 10

// Discoverer finds profile-relevant page URLs in a site's sitemap. It is
// the fallback for sites whose homepage navigation is rendered client-side
// and therefore yields no anchors.
type Discoverer struct {
	client *http.Client
}

// NewDiscoverer creates a new Discoverer. If client is nil,
// http.DefaultClient is used.
func NewDiscoverer(client *http.Client) *Discoverer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Discoverer{client: client}
}

// DiscoverURLs locates the site's sitemap via robots.txt (falling back to
// /sitemap.xml), and returns same-host URLs whose path contains a priority
// keyword, deduplicated in sitemap order and capped at MaxPages-1. A site
// without a sitemap yields an empty slice, not an error.
func (d *Discoverer) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, profiler.Errorf(profiler.EINVALID, "invalid base URL %q", baseURL)
	}

	sitemapURLs := d.findSitemapURLs(ctx, base)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit := profiler.MaxPages - 1
	seenSitemaps := make(map[string]bool)
	seen := make(map[string]bool)
	var links []string

	for _, sitemapURL := range sitemapURLs {
		urls, err := d.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue // a broken sitemap shouldn't sink the crawl
		}
		for _, u := range urls {
			if len(links) >= limit {
				return links, nil
			}
			if !keepURL(base, u, seen) {
				continue
			}
			links = append(links, u)
		}
	}

	return links, nil
}

// keepURL reports whether u is a new, same-host, keyword-bearing URL and
// records it in seen.
func keepURL(base *url.URL, u string, seen map[string]bool) bool {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host != base.Host {
		return false
	}

	path := strings.ToLower(parsed.Path)
	matched := false
	for _, kw := range profiler.LinkKeywords {
		if strings.Contains(path, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	key := strings.TrimSuffix(strings.ToLower(u), "/")
	if seen[key] || key == strings.TrimSuffix(strings.ToLower(base.String()), "/") {
		return false
	}
	seen[key] = true
	return true
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back to
// /sitemap.xml.
func (d *Discoverer) findSitemapURLs(ctx context.Context, base *url.URL) []string {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps := d.parseRobots(ctx, robotsURL.String()); len(sitemaps) > 0 {
		return sitemaps
	}
	return []string{base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}
}

// parseRobots extracts Sitemap: directives from robots.txt.
func (d *Discoverer) parseRobots(ctx context.Context, robotsURL string) []string {
	body, err := d.fetch(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	return sitemaps
}

// processSitemap fetches and parses one sitemap document, handling both
// <urlset> and recursive <sitemapindex> forms.
func (d *Discoverer) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] || len(seen) >= maxSitemaps {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := d.fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, profiler.Errorf(profiler.EINVALID, "malformed sitemap XML at %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, profiler.Errorf(profiler.EINVALID, "empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			child := strings.TrimSpace(loc.Text())
			if child == "" {
				continue
			}
			urls, err := d.processSitemap(ctx, child, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

func (d *Discoverer) fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, profiler.Errorf(profiler.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}
