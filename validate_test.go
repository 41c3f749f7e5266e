package profiler_test

import (
	"fmt"
	"testing"

	"github.com/MelvilleC99/profiler"
	"github.com/stretchr/testify/assert"
)

// validProfile returns a profile with both required sections filled and four
// of twenty leaves carrying content (20% completion).
func validProfile() *profiler.Profile {
	p := profiler.NewProfile()
	p.Set(profiler.SectionCompanySnapshot, "founded", profiler.FieldValue{Str: "2012"})
	p.Set(profiler.SectionCompanySnapshot, "headquarters", profiler.FieldValue{Str: "Berlin"})
	p.Set(profiler.SectionMissionValues, "mission_statement", profiler.FieldValue{Str: "Build things"})
	p.Set("cover_page", "company_name", profiler.FieldValue{Str: "Acme"})
	for i := 0; i < 16; i++ {
		p.Set("services", fmt.Sprintf("field_%d", i), profiler.FieldValue{Str: "Not available"})
	}
	return p
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete profile", func(t *testing.T) {
		t.Parallel()

		v := profiler.Validate(validProfile())

		assert.True(t, v.IsValid)
		assert.InDelta(t, 0.2, v.CompletionRate, 0.001)
	})

	t.Run("rejects nil and empty profiles", func(t *testing.T) {
		t.Parallel()

		assert.False(t, profiler.Validate(nil).IsValid)
		assert.False(t, profiler.Validate(profiler.NewProfile()).IsValid)
	})

	t.Run("rejects missing required section", func(t *testing.T) {
		t.Parallel()

		p := validProfile()
		delete(p.Sections, profiler.SectionMissionValues)

		v := profiler.Validate(p)

		assert.False(t, v.IsValid)
		assert.Contains(t, v.Message, profiler.SectionMissionValues)
	})

	t.Run("accepts a required section with only placeholders", func(t *testing.T) {
		t.Parallel()

		// A present-but-empty required section lowers the completion rate
		// but does not fail validation on its own.
		p := validProfile()
		p.Sections[profiler.SectionMissionValues] = map[string]profiler.FieldValue{
			"mission_statement": {Str: "Not available"},
		}

		v := profiler.Validate(p)

		assert.True(t, v.IsValid)
	})

	t.Run("rejects completion below ten percent", func(t *testing.T) {
		t.Parallel()

		// 2 filled leaves of 30 is below the floor, even with required
		// sections present.
		p := profiler.NewProfile()
		p.Set(profiler.SectionCompanySnapshot, "founded", profiler.FieldValue{Str: "2012"})
		p.Set(profiler.SectionMissionValues, "mission_statement", profiler.FieldValue{Str: "x"})
		for i := 0; i < 28; i++ {
			p.Set("services", fmt.Sprintf("field_%d", i), profiler.FieldValue{Str: ""})
		}

		v := profiler.Validate(p)

		assert.False(t, v.IsValid)
		assert.InDelta(t, 2.0/30.0, v.CompletionRate, 0.001)
	})

	t.Run("accepts completion at exactly ten percent", func(t *testing.T) {
		t.Parallel()

		// 2 filled leaves of 20 is exactly the minimum.
		p := profiler.NewProfile()
		p.Set(profiler.SectionCompanySnapshot, "founded", profiler.FieldValue{Str: "2012"})
		p.Set(profiler.SectionMissionValues, "mission_statement", profiler.FieldValue{Str: "x"})
		for i := 0; i < 18; i++ {
			p.Set("services", fmt.Sprintf("field_%d", i), profiler.FieldValue{Str: "Not found"})
		}

		v := profiler.Validate(p)

		assert.True(t, v.IsValid)
		assert.InDelta(t, 0.1, v.CompletionRate, 0.001)
	})
}
