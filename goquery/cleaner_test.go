package goquery_test

import (
	"strings"
	"testing"

	"github.com/MelvilleC99/profiler"
	"github.com/MelvilleC99/profiler/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ profiler.Cleaner = (*goquery.Cleaner)(nil)
var _ profiler.LinkDiscoverer = (*goquery.Discoverer)(nil)

func TestCleaner_Clean(t *testing.T) {
	t.Parallel()

	t.Run("removes scripts, styles and navigation", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<script>var x = 1;</script>
			<style>.a { color: red }</style>
			<nav><a href="/about">About link text here</a></nav>
			<div class="cookie-banner">We use cookies to improve things</div>
			<p>Acme builds industrial robots for warehouses.</p>
		</body></html>`

		text, err := goquery.NewCleaner().Clean(html)
		require.NoError(t, err)

		assert.Contains(t, text, "Acme builds industrial robots")
		assert.NotContains(t, text, "var x = 1")
		assert.NotContains(t, text, "color: red")
		assert.NotContains(t, text, "About link text")
		assert.NotContains(t, text, "cookies")
	})

	t.Run("snapshots footer contact details under a marker", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<p>Acme builds industrial robots for warehouses.</p>
			<footer class="footer">Email info@acme.io or call (415) 555-0123</footer>
		</body></html>`

		text, err := goquery.NewCleaner().Clean(html)
		require.NoError(t, err)

		assert.Contains(t, text, profiler.ContactMarker)
		assert.Contains(t, text, "info@acme.io")
		assert.Contains(t, text, "(415) 555-0123")
	})

	t.Run("keeps header taglines in the page text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<header>Acme Robotics, warehouse automation since 2012</header>
			<p>Acme builds industrial robots for warehouses.</p>
		</body></html>`

		text, err := goquery.NewCleaner().Clean(html)
		require.NoError(t, err)

		assert.Contains(t, text, "warehouse automation since 2012")
	})

	t.Run("preserves testimonials under a marker", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<p>Acme builds industrial robots for warehouses.</p>
			<div class="testimonial">Acme cut our picking time in half, says Globex Ops.</div>
		</body></html>`

		text, err := goquery.NewCleaner().Clean(html)
		require.NoError(t, err)

		assert.Contains(t, text, profiler.TestimonialMarker)
		assert.Contains(t, text, "picking time in half")
	})

	t.Run("drops very short lines", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>ok</p><p>A sentence long enough to keep.</p></body></html>`

		text, err := goquery.NewCleaner().Clean(html)
		require.NoError(t, err)

		assert.Contains(t, text, "A sentence long enough to keep.")
		for _, line := range strings.Split(text, "\n") {
			assert.Greater(t, len(line), 3)
		}
	})
}

func TestCleaner_Emails(t *testing.T) {
	t.Parallel()

	t.Run("unions mailto links, table cells and page text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="mailto:info@acme.io?subject=Hi">Email us</a>
			<p>Or reach sales at sales@acme.io</p>
			<table><tr><td>hr@acme.io</td></tr></table>
		</body></html>`

		emails := goquery.NewCleaner().Emails(html)

		assert.ElementsMatch(t, []string{"info@acme.io", "sales@acme.io", "hr@acme.io"}, emails)
	})

	t.Run("mailto addresses come first and query suffixes are stripped", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<p>Prose mentions hello@acme.io first.</p>
			<a href="mailto:sales@acme.io?subject=Hi">Email sales</a>
		</body></html>`

		emails := goquery.NewCleaner().Emails(html)

		assert.Equal(t, []string{"sales@acme.io", "hello@acme.io"}, emails)
	})

	t.Run("drops placeholder addresses", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="mailto:noreply@acme.io">no reply</a>
			<p>Contact us at hello@acme.io</p>
		</body></html>`

		emails := goquery.NewCleaner().Emails(html)

		assert.Equal(t, []string{"hello@acme.io"}, emails)
	})
}
