package analyzer

import (
	"sort"
	"strings"

	"draftkit/internal/intel"
	"draftkit/internal/pattern"
	"draftkit/internal/style"
)

// IntelligenceBuilder aggregates template analyses into the dataset the
// matcher loads at startup.
type IntelligenceBuilder struct {
	sections            map[string][]SectionAnalysis
	followedBy          map[string]map[string]int
	precededBy          map[string]map[string]int
	templateOccurrences map[string][]string
	pageAppearances     map[string]int
	totalPages          int
}

func NewIntelligenceBuilder() *IntelligenceBuilder {
	return &IntelligenceBuilder{
		sections:            make(map[string][]SectionAnalysis),
		followedBy:          make(map[string]map[string]int),
		precededBy:          make(map[string]map[string]int),
		templateOccurrences: make(map[string][]string),
		pageAppearances:     make(map[string]int),
	}
}

// AddTemplate folds one template analysis into the running aggregation.
func (b *IntelligenceBuilder) AddTemplate(analysis *TemplateAnalysis) {
	for _, section := range analysis.Sections {
		b.sections[section.ID] = append(b.sections[section.ID], section)
		b.templateOccurrences[section.ID] = append(b.templateOccurrences[section.ID], analysis.Name)
	}

	for _, page := range analysis.Pages {
		b.totalPages++
		for i, id := range page.Sections {
			b.pageAppearances[id]++
			if i+1 < len(page.Sections) {
				b.bump(b.followedBy, id, page.Sections[i+1])
			}
			if i > 0 {
				b.bump(b.precededBy, id, page.Sections[i-1])
			}
		}
	}
}

func (b *IntelligenceBuilder) bump(table map[string]map[string]int, id, neighbor string) {
	if table[id] == nil {
		table[id] = make(map[string]int)
	}
	table[id][neighbor]++
}

// Build produces the final dataset.
func (b *IntelligenceBuilder) Build() *intel.Dataset {
	components := make(map[string]intel.Component, len(b.sections))

	for id, analyses := range b.sections {
		sectionType := analyses[0].SectionType
		components[id] = intel.Component{
			Style: averageProfiles(analyses),
			Usage: intel.Usage{
				Frequency:  float64(b.pageAppearances[id]) / float64(max(b.totalPages, 1)),
				FollowedBy: topNeighbors(b.followedBy[id]),
				PrecededBy: topNeighbors(b.precededBy[id]),
				PageTypes:  inferSitePageTypes(b.templateOccurrences[id]),
				Position:   positionFor(sectionType),
				Categories: []string{"Marketing", string(sectionType)},
			},
		}
	}

	return &intel.Dataset{
		Components: components,
		Metadata: intel.Metadata{
			TotalSections: len(b.sections),
			TotalPages:    b.totalPages,
		},
	}
}

func averageProfiles(analyses []SectionAnalysis) style.Profile {
	profiles := make([]style.Profile, len(analyses))
	for i, a := range analyses {
		profiles[i] = a.Style
	}
	return style.Average(profiles)
}

// topNeighbors keeps the five most frequent neighbors, ties broken by id
// so output is stable.
func topNeighbors(counts map[string]int) []intel.Neighbor {
	if len(counts) == 0 {
		return nil
	}
	neighbors := make([]intel.Neighbor, 0, len(counts))
	for id, count := range counts {
		neighbors = append(neighbors, intel.Neighbor{ID: id, Count: count})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Count != neighbors[j].Count {
			return neighbors[i].Count > neighbors[j].Count
		}
		return neighbors[i].ID < neighbors[j].ID
	})
	if len(neighbors) > 5 {
		neighbors = neighbors[:5]
	}
	return neighbors
}

// inferSitePageTypes guesses the kind of site a component ships with from
// the names of the templates that carry it.
func inferSitePageTypes(templates []string) []string {
	var types []string
	add := func(t string) {
		for _, existing := range types {
			if existing == t {
				return
			}
		}
		types = append(types, t)
	}

	for _, template := range templates {
		lower := strings.ToLower(template)
		if strings.Contains(lower, "saas") || strings.Contains(lower, "commit") {
			add("saas")
		}
		if strings.Contains(lower, "marketing") || strings.Contains(lower, "landing") {
			add("marketing")
		}
		if strings.Contains(lower, "docs") || strings.Contains(lower, "protocol") {
			add("documentation")
		}
		if strings.Contains(lower, "ecommerce") || strings.Contains(lower, "store") {
			add("ecommerce")
		}
	}
	if len(types) == 0 {
		types = append(types, "landing")
	}
	return types
}

// positionFor maps a section role to its usual slot on a page.
func positionFor(sectionType pattern.SectionType) string {
	switch sectionType {
	case pattern.SectionHeader, pattern.SectionHero, pattern.SectionFeatures,
		pattern.SectionPricing, pattern.SectionTestimonial, pattern.SectionFAQ,
		pattern.SectionCTA, pattern.SectionFooter, pattern.SectionSocialProof,
		pattern.SectionForm, pattern.SectionContent:
		return string(sectionType)
	default:
		return ""
	}
}
