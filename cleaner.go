package profiler

// Section markers prepended to fragments the cleaner preserves through
// boilerplate removal.
const (
	ContactMarker     = "CONTACT_SECTION:"
	TestimonialMarker = "TESTIMONIAL_SECTION:"
)

// Cleaner converts raw page markup into plain text suitable for an
// extraction prompt.
type Cleaner interface {
	// Clean returns the page's visible text with boilerplate removed.
	// Contact- and testimonial-bearing fragments are snapshotted before
	// removal and appended after the main text, each tagged with its
	// section marker.
	Clean(html string) (string, error)

	// Emails extracts email addresses from raw markup using a layered
	// search: mailto hrefs first, then contact-scoped containers and table
	// cells, then the whole page text. Results are lowercased, deduplicated
	// and filtered of placeholder addresses. Order is not significant.
	Emails(html string) []string
}
