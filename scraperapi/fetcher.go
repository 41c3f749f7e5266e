// Package scraperapi provides a profiler.Fetcher that proxies page loads
// through the ScraperAPI rendering service, so JavaScript-heavy sites come
// back as fully rendered HTML.
package scraperapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MelvilleC99/profiler"
)

// DefaultBaseURL is the ScraperAPI endpoint.
const DefaultBaseURL = "http://api.scraperapi.com/"

// DefaultFetchTimeout bounds one proxied page load. Rendering is slow, so
// this is much higher than a plain HTTP fetch would use.
const DefaultFetchTimeout = 70 * time.Second

// renderTimeoutMS is the render budget passed to the service.
const renderTimeoutMS = "30000"

// Ensure Fetcher implements profiler.Fetcher at compile time.
var _ profiler.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML through the ScraperAPI proxy.
type Fetcher struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBaseURL overrides the service endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(f *Fetcher) {
		f.baseURL = u
	}
}

// WithTimeout sets the timeout for one proxied fetch.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a Fetcher authenticated with apiKey.
func NewFetcher(apiKey string, opts ...Option) *Fetcher {
	f := &Fetcher{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch loads target through the rendering proxy. A non-2xx proxy response
// is data, not an error: it comes back as a PageResult with OK unset.
// Transport failures return an error instead.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*profiler.PageResult, error) {
	if f.apiKey == "" {
		return nil, profiler.Errorf(profiler.EINVALID, "ScraperAPI key required.")
	}

	q := url.Values{}
	q.Set("api_key", f.apiKey)
	q.Set("url", target)
	q.Set("render", "true")
	q.Set("country_code", "us")
	q.Set("device_type", "desktop")
	q.Set("timeout", renderTimeoutMS)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, profiler.Errorf(profiler.EINVALID, "invalid request for %s: %v", target, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, profiler.Errorf(profiler.EUNAVAILABLE, "fetch %s: %v", target, err)
	}
	defer resp.Body.Close()

	result := &profiler.PageResult{
		URL:        target,
		StatusCode: resp.StatusCode,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.ErrMessage = "HTTP " + resp.Status
		return result, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, profiler.Errorf(profiler.EUNAVAILABLE, "read %s: %v", target, err)
	}

	result.HTML = string(body)
	result.OK = true
	return result, nil
}

// Close releases resources. The underlying http.Client needs no explicit
// cleanup.
func (f *Fetcher) Close() error {
	return nil
}
