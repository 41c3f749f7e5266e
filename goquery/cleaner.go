package goquery

import (
	"regexp"
	"strings"

	"github.com/MelvilleC99/profiler"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// noiseTags are removed from the document before text extraction. Headers
// and footers stay: footer contact details are also snapshotted, and header
// taglines often carry the company name.
var noiseTags = []string{"script", "style", "nav", "aside", "iframe", "noscript"}

// noiseClassRe matches class or id attributes of boilerplate containers.
var noiseClassRe = regexp.MustCompile(`(?i)cookie|popup|modal|menu|navigation|sidebar|breadcrumb|pagination`)

// contactSelectors locate page regions likely to hold contact details.
var contactSelectors = []string{
	"footer",
	"[class*='contact']", "[id*='contact']",
	"[class*='footer']",
	"address",
}

// testimonialSelectors locate page regions likely to hold social proof.
var testimonialSelectors = []string{
	"[class*='testimonial']", "[id*='testimonial']",
	"[class*='review']", "[id*='review']",
	"blockquote",
}

// Minimum snapshot lengths; shorter fragments are boilerplate.
const (
	minContactSnapshot     = 10
	minTestimonialSnapshot = 20
)

var whitespaceRe = regexp.MustCompile(`[ \t]+`)

// Cleaner reduces raw page HTML to plain text suitable for a model prompt,
// preserving contact and testimonial fragments that boilerplate removal
// would otherwise destroy.
type Cleaner struct{}

var _ profiler.Cleaner = (*Cleaner)(nil)

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean strips boilerplate from html and returns readable text. Contact and
// testimonial fragments are snapshotted before node removal and re-appended
// under marker lines so downstream extraction still sees them.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", profiler.Errorf(profiler.EINVALID, "failed to parse HTML: %v", err)
	}

	contact := snapshot(doc, contactSelectors, minContactSnapshot)
	testimonials := snapshot(doc, testimonialSelectors, minTestimonialSnapshot)

	doc.Find(strings.Join(noiseTags, ", ")).Remove()
	doc.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		if noiseClassRe.MatchString(class) || noiseClassRe.MatchString(id) {
			sel.Remove()
		}
	})

	var b strings.Builder
	for _, node := range doc.Nodes {
		writeText(&b, node)
	}

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
		if len(line) <= 3 {
			continue
		}
		lines = append(lines, line)
	}

	for _, frag := range contact {
		lines = append(lines, profiler.ContactMarker+" "+frag)
	}
	for _, frag := range testimonials {
		lines = append(lines, profiler.TestimonialMarker+" "+frag)
	}

	return strings.Join(lines, "\n"), nil
}

// Emails extracts contact addresses from html in layers: mailto hrefs,
// then contact regions and table cells, then the whole page text. Matches
// from every layer are unioned, and placeholder addresses are dropped.
func (c *Cleaner) Emails(rawHTML string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var found []string
	doc.Find("a[href^='mailto:']").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		found = append(found, addr)
	})

	for _, selector := range append(contactSelectors, "td") {
		region := doc.Find(selector).Text()
		found = append(found, profiler.EmailAddresses(region)...)
	}

	found = append(found, profiler.EmailAddresses(doc.Text())...)

	return profiler.FilterEmails(found)
}

// snapshot collects the text of every node matching any selector, keeping
// fragments longer than minLen, deduplicated.
func snapshot(doc *goquery.Document, selectors []string, minLen int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.ReplaceAll(sel.Text(), "\n", " "), " "))
			if len(text) <= minLen || seen[text] {
				return
			}
			seen[text] = true
			out = append(out, text)
		})
	}
	return out
}

// writeText walks the node tree depth-first, emitting text content with
// newlines around block-level elements.
func writeText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	block := n.Type == html.ElementNode && isBlockTag(n.Data)
	if block {
		b.WriteByte('\n')
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		writeText(b, child)
	}
	if block {
		b.WriteByte('\n')
	}
}

func isBlockTag(tag string) bool {
	switch tag {
	case "p", "div", "section", "article", "header", "footer",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"li", "ul", "ol", "table", "tr", "br", "blockquote", "address":
		return true
	}
	return false
}
