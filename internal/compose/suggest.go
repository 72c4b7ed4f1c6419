package compose

import (
	"sort"

	"draftkit/internal/pattern"
)

// Suggestion proposes the next section to add to a page in progress.
type Suggestion struct {
	SectionType string  `json:"section_type"`
	Priority    float64 `json:"priority"`
	Reason      string  `json:"reason"`
}

// sectionFlow captures common section ordering on marketing pages; each
// entry suggests what tends to come next.
var sectionFlow = map[pattern.SectionType][]pattern.SectionType{
	pattern.SectionHeader:   {pattern.SectionHero},
	pattern.SectionHero:     {pattern.SectionSocialProof, pattern.SectionFeatures},
	pattern.SectionFeatures: {pattern.SectionPricing, pattern.SectionTestimonial},
	pattern.SectionPricing:  {pattern.SectionFAQ, pattern.SectionCTA},
	pattern.SectionCTA:      {pattern.SectionFooter},
}

// SuggestNextSection proposes sections for a partially built page.
// Required-but-absent sections rank by their pattern position; flow-based
// suggestions trail at a fixed priority. Results are deduplicated by type
// and sorted by priority descending.
func SuggestNextSection(p *pattern.Pattern, present []pattern.SectionType) []Suggestion {
	presentSet := make(map[pattern.SectionType]bool, len(present))
	for _, t := range present {
		presentSet[t] = true
	}

	byType := make(map[pattern.SectionType]Suggestion)

	for _, sec := range p.Sections {
		if sec.Required && !presentSet[sec.Type] {
			byType[sec.Type] = Suggestion{
				SectionType: string(sec.Type),
				Priority:    1 - float64(sec.Position)/10,
				Reason:      "Required by pattern",
			}
		}
	}

	for _, t := range present {
		for _, next := range sectionFlow[t] {
			if presentSet[next] {
				continue
			}
			if _, inPattern := p.Section(next); !inPattern {
				continue
			}
			if _, taken := byType[next]; taken {
				continue
			}
			byType[next] = Suggestion{
				SectionType: string(next),
				Priority:    0.7,
				Reason:      "Commonly follows " + string(t),
			}
		}
	}

	out := make([]Suggestion, 0, len(byType))
	for _, s := range byType {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].SectionType < out[j].SectionType
	})
	return out
}
