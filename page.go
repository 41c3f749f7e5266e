package profiler

import "context"

// MaxPages caps the number of pages fetched per crawl job, homepage included.
const MaxPages = 8

// PageResult records the outcome of a single fetch attempt.
// It is immutable once created.
type PageResult struct {
	URL        string
	HTML       string
	StatusCode int
	OK         bool
	ErrMessage string
}

// CrawlSet is the ordered collection of fetch results for one crawl job.
// The homepage is always first; insertion order is fetch order. A CrawlSet
// is owned by exactly one job and discarded after aggregation.
type CrawlSet struct {
	Pages []*PageResult
}

// Add appends a fetch result in fetch order.
func (cs *CrawlSet) Add(p *PageResult) {
	cs.Pages = append(cs.Pages, p)
}

// Homepage returns the first page of the set, or nil if the set is empty.
func (cs *CrawlSet) Homepage() *PageResult {
	if len(cs.Pages) == 0 {
		return nil
	}
	return cs.Pages[0]
}

// Successful returns the pages that fetched successfully, in fetch order.
func (cs *CrawlSet) Successful() []*PageResult {
	var pages []*PageResult
	for _, p := range cs.Pages {
		if p.OK {
			pages = append(pages, p)
		}
	}
	return pages
}

// Len returns the number of fetch attempts recorded.
func (cs *CrawlSet) Len() int {
	return len(cs.Pages)
}

// Fetcher retrieves rendered page markup from URLs.
// A single call maps to a single fetch attempt with no retries. A non-2xx
// upstream response is data, not an error: it is reported as a PageResult
// with OK=false and the status in ErrMessage. An error return is reserved
// for transport-level failures and context cancellation; the caller decides
// whether a failed fetch aborts the job (homepage) or is skipped (internal
// page).
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*PageResult, error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// LinkKeywords mark pages worth crawling beyond the homepage. Discoverers
// match them against URL paths and anchor text.
var LinkKeywords = []string{
	"about", "team", "contact", "services", "products",
	"solutions", "company", "who-we-are", "our-story",
	"leadership", "management", "portfolio", "clients",
	"case-studies", "testimonials", "careers", "news", "blog",
}

// LinkDiscoverer extracts high-value internal page URLs from homepage
// markup. Results are deduplicated, share the base URL's host, contain at
// least one priority keyword in their path, and preserve discovery order.
type LinkDiscoverer interface {
	Discover(html, baseURL string) ([]string, error)
}

// SitemapDiscoverer extracts high-value internal page URLs from a site's
// sitemap. Used as a fallback when the homepage markup yields no links,
// typically because navigation is rendered client-side.
type SitemapDiscoverer interface {
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// Pacer spaces successive requests to the same host.
type Pacer interface {
	// Wait blocks until the pace allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
