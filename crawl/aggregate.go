package crawl

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/MelvilleC99/profiler"
)

// Aggregation limits.
const (
	// PageExcerptLimit caps the cleaned text taken from each page.
	PageExcerptLimit = 2000

	// MaxContactHints caps the pre-analysis hints prepended to the
	// aggregate.
	MaxContactHints = 5
)

// Markers for the machine-added lines in an aggregate.
const (
	EmailsMarker = "EXTRACTED_EMAILS:"
	HintsMarker  = "CONTACT_SIGNALS:"
)

// AggregateResult is the model-ready digest of a crawl: one labeled excerpt
// per page plus the emails harvested from raw HTML along the way.
type AggregateResult struct {
	Text   string
	Emails []string
}

// Aggregator reduces a crawl set to a single prompt-sized text.
type Aggregator struct {
	Cleaner      profiler.Cleaner
	ExcerptLimit int
}

// Aggregate cleans every successful page, labels each excerpt with the page
// kind, and prepends contact hints found across the raw HTML. Pages whose
// cleaning fails are skipped.
func (a *Aggregator) Aggregate(set *profiler.CrawlSet) (*AggregateResult, error) {
	pages := set.Successful()
	if len(pages) == 0 {
		return nil, profiler.Errorf(profiler.EUNAVAILABLE, "no pages to aggregate")
	}

	limit := a.ExcerptLimit
	if limit <= 0 {
		limit = PageExcerptLimit
	}

	var sections []string
	var emails []string
	var hints []string

	for _, page := range pages {
		text, err := a.Cleaner.Clean(page.HTML)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}

		emails = append(emails, a.Cleaner.Emails(page.HTML)...)
		for _, hint := range profiler.BusinessContexts(page.HTML) {
			if len(hints) < MaxContactHints && !contains(hints, hint) {
				hints = append(hints, hint)
			}
		}

		text = truncate(text, limit)
		sections = append(sections, "=== "+pageKind(page.URL)+": "+page.URL+" ===\n"+text)
	}

	if len(sections) == 0 {
		return nil, profiler.Errorf(profiler.EUNAVAILABLE, "no usable text in crawled pages")
	}

	emails = profiler.SortEmailsByPriority(profiler.FilterEmails(emails))

	var b strings.Builder
	if len(hints) > 0 {
		b.WriteString(HintsMarker + "\n" + strings.Join(hints, "\n") + "\n\n")
	}
	b.WriteString(strings.Join(sections, "\n\n"))
	if len(emails) > 0 {
		b.WriteString("\n\n" + EmailsMarker + " " + strings.Join(emails, ", "))
	}

	return &AggregateResult{Text: b.String(), Emails: emails}, nil
}

// pageKind labels a page by its URL path so the model knows what kind of
// content each excerpt came from.
func pageKind(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "OTHER"
	}
	path := strings.ToLower(strings.Trim(u.Path, "/"))
	switch {
	case path == "":
		return "HOMEPAGE"
	case strings.Contains(path, "about") || strings.Contains(path, "story") || strings.Contains(path, "who-we-are"):
		return "ABOUT"
	case strings.Contains(path, "service") || strings.Contains(path, "product") || strings.Contains(path, "solution"):
		return "SERVICES"
	case strings.Contains(path, "team") || strings.Contains(path, "leadership") || strings.Contains(path, "management"):
		return "TEAM"
	case strings.Contains(path, "contact"):
		return "CONTACT"
	default:
		return "OTHER"
	}
}

func contains(list []string, s string) bool {
	for _, el := range list {
		if el == s {
			return true
		}
	}
	return false
}

// truncate keeps the first limit bytes of s, backing up to a rune boundary
// so an excerpt never ends in a split character.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
