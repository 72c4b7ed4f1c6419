// Package compose turns patterns and presets into concrete page recipes:
// it matches section types to catalog components, assembles ordered
// sections with slot defaults, and attaches a coherence report.
package compose

import (
	"math"
	"sort"
	"strings"

	"draftkit/internal/catalog"
	"draftkit/internal/intel"
	"draftkit/internal/pattern"
	"draftkit/internal/style"
)

// sectionTaxonomy maps abstract section types to the catalog's third
// taxonomy level. SectionOther is deliberately absent; it falls back to
// keyword search.
var sectionTaxonomy = map[pattern.SectionType]string{
	pattern.SectionHeader:      "Headers",
	pattern.SectionHero:        "Hero Sections",
	pattern.SectionFeatures:    "Feature Sections",
	pattern.SectionSocialProof: "Logo Clouds",
	pattern.SectionPricing:     "Pricing Sections",
	pattern.SectionTestimonial: "Testimonials",
	pattern.SectionFAQ:         "FAQs",
	pattern.SectionCTA:         "CTA Sections",
	pattern.SectionFooter:      "Footers",
	pattern.SectionForm:        "Contact Sections",
	pattern.SectionContent:     "Content Sections",
}

// Recommendation is one ranked candidate for a section.
type Recommendation struct {
	ComponentID string  `json:"component_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// Matcher ranks catalog components for pattern sections. The intelligence
// dataset is optional; without it ranking is keyword-only.
type Matcher struct {
	catalog   *catalog.Catalog
	framework catalog.Framework
	intel     *intel.Dataset
}

func NewMatcher(cat *catalog.Catalog, framework catalog.Framework) *Matcher {
	return &Matcher{catalog: cat, framework: framework}
}

// WithIntelligence attaches a dataset; nil is accepted and means none.
func (m *Matcher) WithIntelligence(d *intel.Dataset) *Matcher {
	m.intel = d
	return m
}

// Match ranks components for a section type using a variant-id hint like
// "hero-split-screenshot". Unknown section types fall back to a plain
// catalog search with a confidence ceiling of 0.5.
func (m *Matcher) Match(sectionType pattern.SectionType, variantHint string, limit int) []Recommendation {
	return m.MatchWithStyle(sectionType, variantHint, nil, limit)
}

// MatchWithStyle additionally ranks by similarity to a target profile when
// the intelligence dataset knows the candidate.
func (m *Matcher) MatchWithStyle(sectionType pattern.SectionType, variantHint string, target *style.Profile, limit int) []Recommendation {
	taxonomy, ok := sectionTaxonomy[sectionType]
	if !ok {
		return m.fallbackSearch(string(sectionType), limit)
	}

	keywords := hintKeywords(variantHint)

	var recs []Recommendation
	for _, rec := range m.catalog.All(m.framework) {
		if rec.Category != "Marketing" || rec.SubSubcategory != taxonomy {
			continue
		}
		confidence := keywordConfidence(rec.Name, keywords)
		if target != nil {
			if entry, known := m.intel.Get(rec.ID); known {
				confidence = 0.6*confidence + 0.4*StyleSimilarity(entry.Style, *target)
			}
		}
		recs = append(recs, Recommendation{
			ComponentID: rec.ID,
			Name:        rec.Name,
			Category:    rec.SubSubcategory,
			Confidence:  confidence,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	return truncate(recs, limit)
}

// RecommendAfter suggests components that commonly follow the given one in
// analyzed pages, ordered by recorded frequency.
func (m *Matcher) RecommendAfter(componentID string, limit int) []Recommendation {
	entry, ok := m.intel.Get(componentID)
	if !ok {
		return nil
	}
	return m.neighborRecs(entry.Usage.FollowedBy, limit)
}

// RecommendBefore is the mirror image over preceding neighbors.
func (m *Matcher) RecommendBefore(componentID string, limit int) []Recommendation {
	entry, ok := m.intel.Get(componentID)
	if !ok {
		return nil
	}
	return m.neighborRecs(entry.Usage.PrecededBy, limit)
}

func (m *Matcher) neighborRecs(neighbors []intel.Neighbor, limit int) []Recommendation {
	sorted := append([]intel.Neighbor(nil), neighbors...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })

	var recs []Recommendation
	for _, n := range sorted {
		r := Recommendation{ComponentID: n.ID, Confidence: float64(n.Count)}
		if rec, ok := m.catalog.FindByID(m.framework, n.ID); ok {
			r.Name = rec.Name
			r.Category = rec.SubSubcategory
		}
		recs = append(recs, r)
	}
	return truncate(recs, limit)
}

func (m *Matcher) fallbackSearch(query string, limit int) []Recommendation {
	var recs []Recommendation
	for _, rec := range m.catalog.Search(m.framework, query) {
		recs = append(recs, Recommendation{
			ComponentID: rec.ID,
			Name:        rec.Name,
			Category:    rec.SubSubcategory,
			Confidence:  0.5,
		})
	}
	return truncate(recs, limit)
}

// hintKeywords splits a kebab-cased variant id and drops the leading
// section-type segment: "hero-split-screenshot" yields ["split",
// "screenshot"].
func hintKeywords(variantHint string) []string {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(variantHint)), "-")
	if len(parts) <= 1 {
		return nil
	}
	var keywords []string
	for _, p := range parts[1:] {
		if p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}

func keywordConfidence(name string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.5
	}
	nameLower := strings.ToLower(name)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(nameLower, kw) {
			matched++
		}
	}
	return 0.3 + 0.7*float64(matched)/float64(len(keywords))
}

// StyleSimilarity compares two profiles: the numeric axes contribute 80%
// as 1 minus the mean absolute difference, the typography scale the rest.
func StyleSimilarity(a, b style.Profile) float64 {
	numeric := 1 - (math.Abs(a.VisualWeight-b.VisualWeight)+
		math.Abs(a.Formality-b.Formality)+
		math.Abs(a.ColorIntensity-b.ColorIntensity)+
		math.Abs(a.SpacingDensity-b.SpacingDensity))/4

	typo := 0.5
	if a.TypographyScale == b.TypographyScale {
		typo = 1.0
	}
	return 0.8*numeric + 0.2*typo
}

func truncate(recs []Recommendation, limit int) []Recommendation {
	if limit > 0 && len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
