// Package extract turns aggregated website text into a structured company
// profile by prompting a completion model and repairing what comes back.
package extract

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MelvilleC99/profiler"
)

// ParseStrategy decides what happens when the model's response is not
// valid JSON.
type ParseStrategy int

const (
	// ParseSalvage recovers a minimal profile from the raw response text.
	ParseSalvage ParseStrategy = iota

	// ParseStrict fails the extraction with EINVALID.
	ParseStrict
)

// DefaultSystemPrompt instructs the model to emit bare JSON.
const DefaultSystemPrompt = "You are a precise data extraction assistant. Return only valid JSON."

// PromptContentLimit caps how much aggregate text goes into the prompt.
// The head is kept: the aggregate opens with the prepended contact hints
// and the homepage excerpt, so truncation drops only trailing pages.
const PromptContentLimit = 20000

// Pre-analysis caps: how many detected emails and business indicators the
// prompt surfaces ahead of the content.
const (
	maxPromptEmails     = 3
	maxPromptIndicators = 5
)

// Sampling knobs for extraction calls.
const (
	Temperature = 0.1
	MaxTokens   = 3000
)

var fenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// Salvage patterns for recovering headline facts from a non-JSON response.
var (
	companyNameRe  = regexp.MustCompile(`(?i)"?company[_ ]name"?\s*[:=]\s*"?([^",\n}]+)`)
	headquartersRe = regexp.MustCompile(`(?i)"?headquarters"?\s*[:=]\s*"?([^",\n}]+)`)
	foundedRe      = regexp.MustCompile(`(?i)"?founded"?\s*[:=]\s*"?(\d{4})`)
)

// Extractor prompts a Completer with aggregated site text and a profile
// template, then parses, normalizes and back-fills the result.
type Extractor struct {
	completer profiler.Completer
	template  profiler.Template
	strategy  ParseStrategy
	system    string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTemplate overrides the profile template. Defaults to
// profiler.DefaultTemplate.
func WithTemplate(t profiler.Template) Option {
	return func(e *Extractor) {
		e.template = t
	}
}

// WithStrategy sets the parse-failure strategy. Defaults to ParseSalvage.
func WithStrategy(s ParseStrategy) Option {
	return func(e *Extractor) {
		e.strategy = s
	}
}

// WithSystemPrompt overrides the system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(e *Extractor) {
		e.system = prompt
	}
}

// NewExtractor creates an Extractor on top of a Completer.
func NewExtractor(completer profiler.Completer, opts ...Option) *Extractor {
	e := &Extractor{
		completer: completer,
		template:  profiler.DefaultTemplate(),
		strategy:  ParseSalvage,
		system:    DefaultSystemPrompt,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Template returns the template the extractor fills.
func (e *Extractor) Template() profiler.Template {
	return e.template
}

// Extract prompts the model with text and returns the normalized profile.
// emails are addresses already harvested from page HTML; they take priority
// over anything found in the text when back-filling contact fields. A
// response that fails to parse is either salvaged or rejected with EINVALID
// depending on the configured strategy.
func (e *Extractor) Extract(ctx context.Context, text string, emails []string) (*profiler.Profile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, profiler.Errorf(profiler.EINVALID, "no content to extract from")
	}

	raw, err := e.completer.Complete(ctx, profiler.CompletionRequest{
		System:      e.system,
		Prompt:      e.buildPrompt(text, emails),
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	profile, err := profiler.UnmarshalProfile([]byte(StripFences(raw)))
	if err != nil {
		if e.strategy == ParseStrict {
			return nil, profiler.Errorf(profiler.EINVALID, "model returned unparseable profile: %v", err)
		}
		profile = salvage(raw)
	}

	profile.Normalize(e.template)
	Enrich(profile, text, emails)
	return profile, nil
}

func (e *Extractor) buildPrompt(text string, emails []string) string {
	analysis := preAnalysis(text, emails)
	text = truncate(text, PromptContentLimit)

	var b strings.Builder
	b.WriteString("Extract a company profile from the website content below.\n")
	if analysis != "" {
		b.WriteString("\nPre-analysis of the content:\n")
		b.WriteString(analysis)
	}
	b.WriteString("\nRespond with a single JSON object matching this template, where each value describes what to extract:\n\n")
	b.WriteString(e.template.PromptJSON())
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Fill every field you can from the content; use \"Not available\" when the content does not say.\n")
	b.WriteString("- Lines starting with " + profiler.ContactMarker + " and " + profiler.TestimonialMarker + " hold contact details and social proof recovered from page furniture.\n")
	b.WriteString("- Return only the JSON object, no commentary.\n\n")
	b.WriteString("Website content:\n")
	b.WriteString(text)
	return b.String()
}

// preAnalysis summarizes contact signals ahead of the content so the model
// sees them even when they sit deep in the text. Harvested emails take
// priority; a regex pass over the text is the fallback.
func preAnalysis(text string, emails []string) string {
	if len(emails) == 0 {
		emails = profiler.FilterEmails(profiler.EmailAddresses(text))
	}
	if len(emails) > maxPromptEmails {
		emails = emails[:maxPromptEmails]
	}
	indicators := profiler.BusinessIndicators(text)
	if len(indicators) > maxPromptIndicators {
		indicators = indicators[:maxPromptIndicators]
	}

	var b strings.Builder
	if len(emails) > 0 {
		b.WriteString("DETECTED EMAILS: " + strings.Join(emails, ", ") + "\n")
	}
	if len(indicators) > 0 {
		b.WriteString("BUSINESS INDICATORS: " + strings.Join(indicators, ", ") + "\n")
	}
	return b.String()
}

// truncate keeps the first limit bytes of s, backing up to a rune boundary
// so the cut never splits a multi-byte character.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// StripFences removes a surrounding markdown code fence, if any.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// salvage builds a minimal profile from an unparseable response by pattern
// matching headline facts out of the raw text.
func salvage(raw string) *profiler.Profile {
	p := profiler.NewProfile()
	p.Salvaged = true

	if m := companyNameRe.FindStringSubmatch(raw); m != nil {
		p.Set("cover_page", "company_name", profiler.FieldValue{Str: strings.TrimSpace(m[1])})
	}
	if m := headquartersRe.FindStringSubmatch(raw); m != nil {
		p.Set(profiler.SectionCompanySnapshot, "headquarters", profiler.FieldValue{Str: strings.TrimSpace(m[1])})
	}
	if m := foundedRe.FindStringSubmatch(raw); m != nil {
		p.Set(profiler.SectionCompanySnapshot, "founded", profiler.FieldValue{Str: m[1]})
	}
	return p
}
