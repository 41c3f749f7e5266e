package profiler

import (
	"regexp"
	"sort"
	"strings"
)

// This file is the contact-signal extractor: the single home for the
// heuristic pattern searches used both for pre-analysis hints (aggregation)
// and for back-filling template fields the model left empty (extraction).

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Phone patterns in priority order: US-style first, loose international
// digit groups second.
var phoneRes = []*regexp.Regexp{
	regexp.MustCompile(`\+?1?[-.\s]?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`),
	regexp.MustCompile(`\+?[0-9]{1,4}[-.\s]?[0-9]{1,4}[-.\s]?[0-9]{1,4}[-.\s]?[0-9]{1,9}`),
}

// Address patterns in priority order: street-suffix first, generic
// "number + words + 4-5 digit code" second.
var addressRes = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Drive|Dr|Lane|Ln|Way|Place|Pl)\s*,?\s*[A-Za-z\s]+,?\s*[A-Z]{2}\s*\d{5}`),
	regexp.MustCompile(`\d+\s+[A-Za-z\s,]+\s+[A-Za-z\s]+,\s*[A-Za-z\s]+\s*\d{4,5}`),
}

// socialPlatforms lists the recognized platforms in output order.
var socialPlatforms = []struct {
	name string
	re   *regexp.Regexp
}{
	{"linkedin", regexp.MustCompile(`(?i)linkedin\.com/(?:company/|in/)[a-zA-Z0-9-]+`)},
	{"twitter", regexp.MustCompile(`(?i)twitter\.com/[a-zA-Z0-9_]+`)},
	{"facebook", regexp.MustCompile(`(?i)facebook\.com/[a-zA-Z0-9.]+`)},
	{"instagram", regexp.MustCompile(`(?i)instagram\.com/[a-zA-Z0-9_.]+`)},
	{"youtube", regexp.MustCompile(`(?i)youtube\.com/(?:c/|channel/|user/)[a-zA-Z0-9_-]+`)},
}

var clientMentionRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:clients?|customers?|partners?)\s+(?:include|such as|like):?\s*([^.]+)`),
	regexp.MustCompile(`(?i)trusted by\s+([^.]+)`),
	regexp.MustCompile(`(?i)working with\s+([^.]+)`),
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// emailExclusions are substrings that mark a matched address as a
// placeholder or no-reply address rather than a real contact.
var emailExclusions = []string{
	"example.com", "test.com", "domain.com", "yoursite.com",
	"noreply", "no-reply", "donotreply", "@example",
}

// businessEmailPrefixes are common business mailbox prefixes, sorted first
// when choosing a contact email.
var businessEmailPrefixes = []string{"info@", "contact@", "hello@", "support@", "sales@"}

// businessIndicators are generic business-signal keywords surfaced in the
// extraction prompt's pre-analysis block.
var businessIndicators = []string{
	"headquarters", "office", "founded", "ceo",
	"revenue", "employees", "million", "billion",
}

// locationKeywords extend businessIndicators when mining context snippets
// from raw markup.
var locationKeywords = []string{
	"address", "street", "avenue", "road", "city", "town", "country",
}

// Context snippet bounds: lines this short are markup residue, and longer
// matches are cut so five hints stay a small fraction of the prompt.
const (
	minContextLen     = 5
	contextSnippetLen = 100
)

var (
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	spaceRunRe = regexp.MustCompile(`\s+`)
)

// testimonialIndicators mark sentences worth keeping as social proof.
var testimonialIndicators = []string{
	"testimonial", "review", "client says", "customer feedback",
	"trusted by", "clients include", "working with", "case study",
	"success story", `"`, "rating", "stars", "recommended",
}

// minTestimonialLen is the minimum sentence length for a testimonial match.
const minTestimonialLen = 20

// EmailAddresses returns every email-shaped match in text, lowercased and
// deduplicated, in match order. No exclusion filtering is applied; see
// FilterEmails.
func EmailAddresses(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range emailRe.FindAllString(text, -1) {
		m = strings.ToLower(m)
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// FilterEmails lowercases, deduplicates and drops addresses containing any
// known placeholder fragment. Input order is preserved. Filtering is
// idempotent: filtering an already-filtered list is a no-op.
func FilterEmails(emails []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seen[e] {
			continue
		}
		if containsAny(e, emailExclusions) {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// SortEmailsByPriority orders addresses with business-prefixed mailboxes
// (info@, contact@, ...) first; each group is sorted lexicographically so
// the choice of "first email" is deterministic.
func SortEmailsByPriority(emails []string) []string {
	var prioritized, rest []string
	for _, e := range emails {
		if containsAny(e, businessEmailPrefixes) {
			prioritized = append(prioritized, e)
		} else {
			rest = append(rest, e)
		}
	}
	sort.Strings(prioritized)
	sort.Strings(rest)
	return append(prioritized, rest...)
}

// PhoneNumbers returns phone-shaped matches, US-style matches before loose
// international ones, deduplicated. Callers wanting a single number take
// the first element.
func PhoneNumbers(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, re := range phoneRes {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			if m == "" || seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// StreetAddresses returns address-shaped matches, street-suffix matches
// first, deduplicated.
func StreetAddresses(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, re := range addressRes {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			if m == "" || seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// SocialHandles returns the first match per recognized platform,
// materialized as https:// URLs, in fixed platform order.
func SocialHandles(text string) []string {
	var out []string
	for _, p := range socialPlatforms {
		if m := p.re.FindString(text); m != "" {
			out = append(out, "https://"+m)
		}
	}
	return out
}

// TestimonialSentences splits text into sentences and keeps those that
// contain a testimonial indicator and exceed a minimum length, up to limit.
func TestimonialSentences(text string, limit int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minTestimonialLen || seen[sentence] {
			continue
		}
		if !containsAny(strings.ToLower(sentence), testimonialIndicators) {
			continue
		}
		seen[sentence] = true
		out = append(out, sentence)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// ClientMentions returns phrases naming clients ("clients include ...",
// "trusted by ...", "working with ..."), up to limit.
func ClientMentions(text string, limit int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, re := range clientMentionRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			mention := strings.TrimSpace(m[1])
			if mention == "" || seen[mention] {
				continue
			}
			seen[mention] = true
			out = append(out, mention)
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// BusinessIndicators returns the generic business-signal keywords present
// in text, in fixed order.
func BusinessIndicators(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, indicator := range businessIndicators {
		if strings.Contains(lower, indicator) {
			out = append(out, indicator)
		}
	}
	return out
}

// BusinessContexts mines raw markup for one-line context snippets around
// business and location keywords: each matching source line has its tags
// stripped, whitespace collapsed, and is truncated to contextSnippetLen
// characters. Deduplicated, in document order.
func BusinessContexts(markup string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(markup, "\n") {
		lower := strings.ToLower(line)
		if !containsAny(lower, businessIndicators) && !containsAny(lower, locationKeywords) {
			continue
		}
		clean := strings.TrimSpace(spaceRunRe.ReplaceAllString(tagRe.ReplaceAllString(line, " "), " "))
		if len(clean) <= minContextLen {
			continue
		}
		if len(clean) > contextSnippetLen {
			cut := contextSnippetLen
			for cut > 0 && clean[cut]&0xC0 == 0x80 { // back off a split rune
				cut--
			}
			clean = clean[:cut]
		}
		if seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
	}
	return out
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
