package analyzer

import (
	"fmt"
	"sort"
	"strings"
)

// TemplateRanking orders templates for one page type.
type TemplateRanking struct {
	Best         string   `json:"best"`
	Score        int      `json:"score"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// CrossTemplateComponent is a component that appears in more than one
// template, making it a candidate for shared chrome.
type CrossTemplateComponent struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Templates []string   `json:"templates"`
	PageTypes []PageType `json:"page_types,omitempty"`
}

// SiteRecommendation assigns a source template to each requested page type.
type SiteRecommendation struct {
	TemplateAssignments map[PageType]string `json:"template_assignments"`
	TemplateCount       int                 `json:"template_count"`
	ShareableComponents []string            `json:"shareable_components,omitempty"`
	StyleNotes          []string            `json:"style_notes,omitempty"`
}

// SiteIntelligence aggregates page analyses across templates so a site can
// mix sources: one template's blog with another's pricing page.
type SiteIntelligence struct {
	bestForType         map[PageType]*TemplateRanking
	crossTemplate       []CrossTemplateComponent
	templatesByStrength map[PageType][]string
}

// NewSiteIntelligence builds cross-template intelligence from a set of
// page-first analyses.
func NewSiteIntelligence(analyses []*TemplatePageAnalysis) *SiteIntelligence {
	si := &SiteIntelligence{
		bestForType:         make(map[PageType]*TemplateRanking),
		templatesByStrength: make(map[PageType][]string),
	}

	occurrences := make(map[string]*CrossTemplateComponent)

	for _, analysis := range analyses {
		typeCounts := make(map[PageType]int)
		for _, page := range analysis.Pages {
			typeCounts[page.PageType]++
		}

		for pageType, count := range typeCounts {
			if pageType == PageUnknown {
				continue
			}
			ranking, ok := si.bestForType[pageType]
			if !ok {
				ranking = &TemplateRanking{Best: analysis.Name}
				si.bestForType[pageType] = ranking
			}
			switch {
			case count > ranking.Score:
				if ranking.Score > 0 {
					ranking.Alternatives = append(ranking.Alternatives, ranking.Best)
				}
				ranking.Best = analysis.Name
				ranking.Score = count
			case count > 0 && ranking.Best != analysis.Name:
				ranking.Alternatives = append(ranking.Alternatives, analysis.Name)
			}
			si.templatesByStrength[pageType] = append(si.templatesByStrength[pageType], analysis.Name)
		}

		for id, comp := range analysis.Components {
			entry, ok := occurrences[id]
			if !ok {
				entry = &CrossTemplateComponent{ID: id, Name: comp.Name}
				occurrences[id] = entry
			}
			if !contains(entry.Templates, analysis.Name) {
				entry.Templates = append(entry.Templates, analysis.Name)
			}
			for pt := range comp.PageTypes {
				if !containsPageType(entry.PageTypes, pt) {
					entry.PageTypes = append(entry.PageTypes, pt)
				}
			}
		}
	}

	for _, entry := range occurrences {
		if len(entry.Templates) > 1 {
			sort.Slice(entry.PageTypes, func(i, j int) bool { return entry.PageTypes[i] < entry.PageTypes[j] })
			si.crossTemplate = append(si.crossTemplate, *entry)
		}
	}
	sort.Slice(si.crossTemplate, func(i, j int) bool { return si.crossTemplate[i].ID < si.crossTemplate[j].ID })

	return si
}

// BestTemplateFor names the template with the most pages of the given type.
func (si *SiteIntelligence) BestTemplateFor(pageType PageType) (string, bool) {
	ranking, ok := si.bestForType[pageType]
	if !ok {
		return "", false
	}
	return ranking.Best, true
}

// RankingFor returns the full ranking for a page type.
func (si *SiteIntelligence) RankingFor(pageType PageType) (*TemplateRanking, bool) {
	ranking, ok := si.bestForType[pageType]
	return ranking, ok
}

// TemplatesSupporting lists every template with at least one page of the
// given type.
func (si *SiteIntelligence) TemplatesSupporting(pageType PageType) []string {
	return si.templatesByStrength[pageType]
}

// CrossTemplateComponents lists components seen in more than one template.
func (si *SiteIntelligence) CrossTemplateComponents() []CrossTemplateComponent {
	return si.crossTemplate
}

// SupportedPageTypes lists the page types any analyzed template covers.
func (si *SiteIntelligence) SupportedPageTypes() []PageType {
	types := make([]PageType, 0, len(si.bestForType))
	for t := range si.bestForType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// RecommendForSite assigns the best template to each requested page type
// and calls out components that could be shared across the result.
func (si *SiteIntelligence) RecommendForSite(pageTypes []PageType) SiteRecommendation {
	assignments := make(map[PageType]string)
	used := make(map[string]bool)

	for _, pageType := range pageTypes {
		if ranking, ok := si.bestForType[pageType]; ok {
			assignments[pageType] = ranking.Best
			used[ranking.Best] = true
		}
	}

	var shareable []string
	for _, comp := range si.crossTemplate {
		inUse := false
		for _, t := range comp.Templates {
			if used[t] {
				inUse = true
				break
			}
		}
		if !inUse {
			continue
		}
		lower := strings.ToLower(comp.ID)
		if strings.Contains(lower, "header") || strings.Contains(lower, "footer") ||
			strings.Contains(lower, "nav") || strings.Contains(lower, "layout") {
			shareable = append(shareable, comp.Name)
		}
	}

	return SiteRecommendation{
		TemplateAssignments: assignments,
		TemplateCount:       len(used),
		ShareableComponents: shareable,
		StyleNotes:          styleNotes(used, pageTypes),
	}
}

func styleNotes(used map[string]bool, pageTypes []PageType) []string {
	var notes []string

	if len(used) > 1 {
		notes = append(notes, fmt.Sprintf("Combining %d templates - ensure consistent color palette and typography", len(used)))
	}

	hasBlog, hasDocs := false, false
	for _, t := range pageTypes {
		hasBlog = hasBlog || t == PageBlog
		hasDocs = hasDocs || t == PageDocs
	}
	if hasBlog && hasDocs {
		notes = append(notes, "Both blog and docs pages detected - consider using a unified reading experience")
	}

	if len(used) == 1 {
		for name := range used {
			notes = append(notes, fmt.Sprintf("Single template (%s) can handle all page types - easiest integration", name))
		}
	}
	return notes
}

func containsPageType(list []PageType, t PageType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}
