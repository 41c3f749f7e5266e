// Package rod provides a profiler.Fetcher backed by a local headless Chrome
// browser, for runs where no rendering proxy is configured.
package rod

import (
	"context"
	"strconv"

	"github.com/MelvilleC99/profiler"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements profiler.Fetcher at compile time.
var _ profiler.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher() (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, profiler.Errorf(profiler.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, profiler.Errorf(profiler.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	return &Fetcher{browser: browser}, nil
}

// Fetch navigates to the URL and returns the rendered page. Navigation and
// rendering failures are transport errors; an HTTP error status from the
// site comes back as a PageResult with OK unset.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*profiler.PageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, profiler.Errorf(profiler.EUNAVAILABLE, "opening page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	// Capture the document response so the status code survives rendering.
	var response proto.NetworkResponseReceived
	wait := page.WaitEvent(&response)

	if err := page.Navigate(url); err != nil {
		return nil, profiler.Errorf(profiler.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}
	wait()

	if err := page.WaitLoad(); err != nil {
		return nil, profiler.Errorf(profiler.EUNAVAILABLE, "waiting for %s: %v", url, err)
	}

	result := &profiler.PageResult{URL: url}
	if response.Response != nil {
		result.StatusCode = response.Response.Status
	}
	if result.StatusCode >= 400 {
		result.ErrMessage = "HTTP " + strconv.Itoa(result.StatusCode)
		return result, nil
	}

	html, err := page.HTML()
	if err != nil {
		return nil, profiler.Errorf(profiler.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	result.HTML = html
	result.OK = true
	return result, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
