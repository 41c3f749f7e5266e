package profiler

import "fmt"

// MinCompletionRate is the fraction of profile leaves that must carry
// usable content for an extraction to pass validation.
const MinCompletionRate = 0.1

// RequiredSections must be present in every valid profile.
var RequiredSections = []string{SectionCompanySnapshot, SectionMissionValues}

// Verdict is the outcome of validating an extracted profile.
type Verdict struct {
	IsValid        bool    `json:"is_valid"`
	Message        string  `json:"message"`
	CompletionRate float64 `json:"completion_rate"`
}

// Validate checks an extracted profile for structural completeness: every
// required section present, and overall completion at or above
// MinCompletionRate. Required sections are checked for presence only; their
// fields count toward the completion rate like everyone else's. The
// denominator is the number of leaves the profile itself holds, not the
// template size, so a salvaged partial profile is judged on what it claims
// to contain.
func Validate(p *Profile) Verdict {
	if p == nil || len(p.Sections) == 0 {
		return Verdict{Message: "profile is empty"}
	}
	for _, name := range RequiredSections {
		if _, ok := p.Sections[name]; !ok {
			return Verdict{Message: fmt.Sprintf("missing required section: %s", name)}
		}
	}
	total := p.LeafCount()
	if total == 0 {
		return Verdict{Message: "profile has no fields"}
	}
	rate := float64(p.FilledCount()) / float64(total)
	if rate < MinCompletionRate {
		return Verdict{
			Message:        fmt.Sprintf("completion rate %.0f%% below minimum %.0f%%", rate*100, MinCompletionRate*100),
			CompletionRate: rate,
		}
	}
	return Verdict{
		IsValid:        true,
		Message:        fmt.Sprintf("profile valid, completion rate %.0f%%", rate*100),
		CompletionRate: rate,
	}
}
