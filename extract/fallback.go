package extract

import "github.com/MelvilleC99/profiler"

// Enrichment caps, matching how much social proof a profile usefully holds.
const (
	maxTestimonials = 3
	maxCaseStudies  = 5
)

// Enrich back-fills contact and social-proof fields the model left empty
// using pattern searches over the aggregate text. Fields the model filled
// are never overwritten. emails come from page HTML and outrank addresses
// found in the text.
func Enrich(p *profiler.Profile, text string, emails []string) {
	enrichEmail(p, text, emails)

	if p.Get(profiler.SectionContactInfo, "phone").IsZero() {
		if phones := profiler.PhoneNumbers(text); len(phones) > 0 {
			p.Set(profiler.SectionContactInfo, "phone", profiler.FieldValue{Str: phones[0]})
		}
	}

	if p.Get(profiler.SectionContactInfo, "address").IsZero() {
		if addrs := profiler.StreetAddresses(text); len(addrs) > 0 {
			p.Set(profiler.SectionContactInfo, "address", profiler.FieldValue{Str: addrs[0]})
		}
	}

	if p.Get(profiler.SectionContactInfo, "social_media").IsZero() {
		if handles := profiler.SocialHandles(text); len(handles) > 0 {
			p.Set(profiler.SectionContactInfo, "social_media", profiler.FieldValue{List: handles})
		}
	}

	if p.Get(profiler.SectionSocialProof, "testimonials").IsZero() {
		if quotes := profiler.TestimonialSentences(text, maxTestimonials); len(quotes) > 0 {
			p.Set(profiler.SectionSocialProof, "testimonials", profiler.FieldValue{List: quotes})
		}
	}

	if p.Get(profiler.SectionSocialProof, "case_studies").IsZero() {
		if mentions := profiler.ClientMentions(text, maxCaseStudies); len(mentions) > 0 {
			p.Set(profiler.SectionSocialProof, "case_studies", profiler.FieldValue{List: mentions})
		}
	}
}

func enrichEmail(p *profiler.Profile, text string, emails []string) {
	if !p.Get(profiler.SectionContactInfo, "email").IsZero() {
		return
	}
	candidates := profiler.FilterEmails(emails)
	if len(candidates) == 0 {
		candidates = profiler.FilterEmails(profiler.EmailAddresses(text))
	}
	if len(candidates) == 0 {
		return
	}
	candidates = profiler.SortEmailsByPriority(candidates)
	p.Set(profiler.SectionContactInfo, "email", profiler.FieldValue{Str: candidates[0]})
}
