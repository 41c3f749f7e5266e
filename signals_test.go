package profiler_test

import (
	"strings"
	"testing"

	"github.com/MelvilleC99/profiler"
	"github.com/stretchr/testify/assert"
)

func TestEmailAddresses(t *testing.T) {
	t.Parallel()

	t.Run("finds plain addresses in text", func(t *testing.T) {
		t.Parallel()

		text := "Reach us at info@acme.io or sales@acme.io for quotes."

		emails := profiler.EmailAddresses(text)

		assert.Equal(t, []string{"info@acme.io", "sales@acme.io"}, emails)
	})

	t.Run("deduplicates case-insensitively", func(t *testing.T) {
		t.Parallel()

		text := "Info@Acme.io and info@acme.io"

		emails := profiler.EmailAddresses(text)

		assert.Len(t, emails, 1)
	})
}

func TestFilterEmails(t *testing.T) {
	t.Parallel()

	t.Run("drops placeholder and noreply addresses", func(t *testing.T) {
		t.Parallel()

		in := []string{
			"info@acme.io",
			"test@example.com",
			"noreply@acme.io",
			"no-reply@acme.io",
			"donotreply@acme.io",
			"hello@domain.com",
			"user@yoursite.com",
		}

		out := profiler.FilterEmails(in)

		assert.Equal(t, []string{"info@acme.io"}, out)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		in := []string{"info@acme.io", "noreply@acme.io", "sales@acme.io"}

		once := profiler.FilterEmails(in)
		twice := profiler.FilterEmails(once)

		assert.Equal(t, once, twice)
	})
}

func TestSortEmailsByPriority(t *testing.T) {
	t.Parallel()

	in := []string{"jane.doe@acme.io", "info@acme.io", "team@acme.io", "contact@acme.io"}

	out := profiler.SortEmailsByPriority(in)

	assert.Equal(t, []string{"contact@acme.io", "info@acme.io", "jane.doe@acme.io", "team@acme.io"}, out)
}

func TestPhoneNumbers(t *testing.T) {
	t.Parallel()

	t.Run("matches US formats", func(t *testing.T) {
		t.Parallel()

		text := "Call (415) 555-0123 or 415-555-0199 today."

		phones := profiler.PhoneNumbers(text)

		assert.Contains(t, phones, "(415) 555-0123")
		assert.Contains(t, phones, "415-555-0199")
		assert.Equal(t, "(415) 555-0123", phones[0])
	})

	t.Run("matches international format", func(t *testing.T) {
		t.Parallel()

		phones := profiler.PhoneNumbers("Office: +44 20 7946 0958")

		assert.NotEmpty(t, phones)
	})
}

func TestStreetAddresses(t *testing.T) {
	t.Parallel()

	text := "Visit us at 100 Market Street, San Francisco, CA 94105."

	addrs := profiler.StreetAddresses(text)

	assert.NotEmpty(t, addrs)
	assert.Contains(t, addrs[0], "100 Market Street")
}

func TestSocialHandles(t *testing.T) {
	t.Parallel()

	text := `Follow us: https://linkedin.com/company/acme and https://twitter.com/acme
Also twitter.com/acme_support should be ignored, first per platform wins.`

	handles := profiler.SocialHandles(text)

	assert.Equal(t, []string{
		"https://linkedin.com/company/acme",
		"https://twitter.com/acme",
	}, handles)
}

func TestTestimonialSentences(t *testing.T) {
	t.Parallel()

	text := `Acme is trusted by hundreds of growing companies worldwide.
Great. Read this customer feedback from a long-time subscriber about our support team.
This sentence has no social proof markers at all and should be skipped.`

	got := profiler.TestimonialSentences(text, 3)

	assert.Len(t, got, 2)
	for _, s := range got {
		assert.Greater(t, len(s), 20)
	}
}

func TestClientMentions(t *testing.T) {
	t.Parallel()

	text := "We are trusted by Globex and proudly work with Initech on infrastructure."

	got := profiler.ClientMentions(text, 5)

	assert.NotEmpty(t, got)
}

func TestBusinessIndicators(t *testing.T) {
	t.Parallel()

	text := "Founded in 2012, headquarters in Berlin, 300 employees."

	hints := profiler.BusinessIndicators(text)

	assert.NotEmpty(t, hints)
}

func TestBusinessContexts(t *testing.T) {
	t.Parallel()

	t.Run("strips tags and keeps matching lines only", func(t *testing.T) {
		t.Parallel()

		markup := "<div><p>Our headquarters: 12 Main Street, Berlin</p></div>\n" +
			"<p>Nothing notable on this line.</p>\n" +
			"<span>Founded</span> <span>in 2012 by two engineers.</span>"

		got := profiler.BusinessContexts(markup)

		assert.Equal(t, []string{
			"Our headquarters: 12 Main Street, Berlin",
			"Founded in 2012 by two engineers.",
		}, got)
	})

	t.Run("truncates long lines to the snippet length", func(t *testing.T) {
		t.Parallel()

		markup := "<p>The office " + strings.Repeat("description ", 20) + "</p>"

		got := profiler.BusinessContexts(markup)

		assert.Len(t, got, 1)
		assert.LessOrEqual(t, len(got[0]), 100)
	})

	t.Run("deduplicates and skips markup residue", func(t *testing.T) {
		t.Parallel()

		markup := "<p>Our office is in Lyon.</p>\n<p>Our office is in Lyon.</p>\n<td>city</td>"

		got := profiler.BusinessContexts(markup)

		assert.Equal(t, []string{"Our office is in Lyon."}, got)
	})
}
