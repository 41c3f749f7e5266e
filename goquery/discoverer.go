// Package goquery implements HTML link discovery and page cleaning using
// the PuerkitoBio/goquery CSS selector engine.
package goquery

import (
	"net/url"
	"strings"

	"github.com/MelvilleC99/profiler"
	"github.com/PuerkitoBio/goquery"
)

// Discoverer selects same-host links relevant to a company profile from a
// homepage's HTML.
type Discoverer struct{}

var _ profiler.LinkDiscoverer = (*Discoverer)(nil)

// NewDiscoverer creates a new Discoverer.
func NewDiscoverer() *Discoverer {
	return &Discoverer{}
}

// Discover parses html and returns absolute same-host URLs whose resolved
// path contains a profile-relevant keyword, deduplicated in document order
// and capped at MaxPages-1 so the homepage keeps its slot. The keyword test
// runs on the path alone: a keyword in the host or the anchor text does not
// qualify a link.
func (d *Discoverer) Discover(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, profiler.Errorf(profiler.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, profiler.Errorf(profiler.EINVALID, "failed to parse HTML: %v", err)
	}

	limit := profiler.MaxPages - 1
	seen := map[string]bool{normalizeURL(baseURL): true}
	var links []string

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""

		if resolved.Host != base.Host || !pathHasKeyword(resolved.Path) {
			return true
		}

		key := normalizeURL(resolved.String())
		if seen[key] {
			return true
		}
		seen[key] = true

		links = append(links, resolved.String())
		return len(links) < limit
	})

	return links, nil
}

// pathHasKeyword reports whether the lower-cased URL path contains at least
// one priority keyword.
func pathHasKeyword(path string) bool {
	path = strings.ToLower(path)
	for _, kw := range profiler.LinkKeywords {
		if strings.Contains(path, kw) {
			return true
		}
	}
	return false
}

// isNonHTTPLink reports whether href is a fragment, mailto:, tel: or
// javascript: link.
func isNonHTTPLink(href string) bool {
	if strings.HasPrefix(href, "#") {
		return true
	}
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "javascript:")
}

// normalizeURL canonicalizes a URL for deduplication: trailing slash and
// scheme case are ignored.
func normalizeURL(raw string) string {
	return strings.TrimSuffix(strings.ToLower(raw), "/")
}
