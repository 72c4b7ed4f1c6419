package compose

import (
	"os"
	"path/filepath"
	"testing"

	"draftkit/internal/catalog"
	"draftkit/internal/intel"
	"draftkit/internal/pattern"
	"draftkit/internal/style"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T, lines string) *catalog.Catalog {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "react-v4.ndjson"), []byte(lines), 0o644))
	return catalog.Load(dir)
}

const heroCorpus = `{"id":"hero-split-screenshot","uuid":"u1","name":"Split with screenshot","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"Hero Sections"}
{"id":"hero-centered","uuid":"u2","name":"Centered with background","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"Hero Sections"}
{"id":"pricing-three-tier","uuid":"u3","name":"Three tiers","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"Pricing Sections"}
{"id":"product-list","uuid":"u4","name":"Product list hero","category":"Ecommerce","subcategory":"Components","sub_subcategory":"Product Lists"}
`

func TestMatch_KeywordRanking(t *testing.T) {
	m := NewMatcher(testCatalog(t, heroCorpus), catalog.FrameworkReact)

	recs := m.Match(pattern.SectionHero, "hero-split-screenshot", 10)
	require.Len(t, recs, 2, "only Marketing records in the mapped taxonomy")

	assert.Equal(t, "hero-split-screenshot", recs[0].ComponentID)
	// Both keywords hit: 0.3 + 0.7*2/2.
	assert.InDelta(t, 1.0, recs[0].Confidence, 1e-9)
	// Neither hits: 0.3.
	assert.InDelta(t, 0.3, recs[1].Confidence, 1e-9)
}

func TestMatch_EmptyKeywords(t *testing.T) {
	m := NewMatcher(testCatalog(t, heroCorpus), catalog.FrameworkReact)

	recs := m.Match(pattern.SectionHero, "hero", 10)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.InDelta(t, 0.5, r.Confidence, 1e-9)
	}
}

func TestMatch_UnknownSectionTypeFallsBack(t *testing.T) {
	m := NewMatcher(testCatalog(t, heroCorpus), catalog.FrameworkReact)

	recs := m.Match(pattern.SectionOther, "", 10)
	assert.Empty(t, recs, "no record matches the literal query")

	// The fallback is a plain substring search with a 0.5 ceiling.
	recs = m.fallbackSearch("hero", 10)
	require.Len(t, recs, 3)
	for _, r := range recs {
		assert.InDelta(t, 0.5, r.Confidence, 1e-9)
	}
}

func TestMatch_Limit(t *testing.T) {
	m := NewMatcher(testCatalog(t, heroCorpus), catalog.FrameworkReact)

	recs := m.Match(pattern.SectionHero, "", 1)
	assert.Len(t, recs, 1)
}

func TestMatchWithStyle_IntelligenceRanking(t *testing.T) {
	target := style.Profile{VisualWeight: 0.5, Formality: 0.5, ColorIntensity: 0.5, SpacingDensity: 0.5, TypographyScale: style.ScaleMedium}

	dataset := &intel.Dataset{
		Components: map[string]intel.Component{
			// Identical to the target.
			"hero-split-screenshot": {Style: target},
			// Maximally distant on every axis.
			"hero-centered": {Style: style.Profile{VisualWeight: 1, Formality: 1, ColorIntensity: 1, SpacingDensity: 1, TypographyScale: style.ScaleLarge}},
		},
	}

	m := NewMatcher(testCatalog(t, heroCorpus), catalog.FrameworkReact).WithIntelligence(dataset)

	// The hint matches neither name, so keyword confidence ties at 0.3 and
	// style similarity decides the order.
	recs := m.MatchWithStyle(pattern.SectionHero, "hero-nonexistent", &target, 10)
	require.Len(t, recs, 2)
	assert.Equal(t, "hero-split-screenshot", recs[0].ComponentID)
	assert.Greater(t, recs[0].Confidence, recs[1].Confidence)
}

func TestStyleSimilarity(t *testing.T) {
	a := style.Profile{VisualWeight: 0.5, Formality: 0.5, ColorIntensity: 0.5, SpacingDensity: 0.5, TypographyScale: style.ScaleMedium}

	assert.InDelta(t, 1.0, StyleSimilarity(a, a), 1e-9)

	b := a
	b.TypographyScale = style.ScaleLarge
	assert.InDelta(t, 0.9, StyleSimilarity(a, b), 1e-9, "scale mismatch costs half the 20% typography term")

	far := style.Profile{VisualWeight: 1, Formality: 1, ColorIntensity: 1, SpacingDensity: 1, TypographyScale: style.ScaleMedium}
	zero := style.Profile{TypographyScale: style.ScaleMedium}
	assert.InDelta(t, 0.2, StyleSimilarity(far, zero), 1e-9)
}

func TestRecommendAfter(t *testing.T) {
	dataset := &intel.Dataset{
		Components: map[string]intel.Component{
			"hero-split-screenshot": {
				Usage: intel.Usage{
					FollowedBy: []intel.Neighbor{
						{ID: "pricing-three-tier", Count: 2},
						{ID: "hero-centered", Count: 5},
					},
				},
			},
		},
	}
	m := NewMatcher(testCatalog(t, heroCorpus), catalog.FrameworkReact).WithIntelligence(dataset)

	recs := m.RecommendAfter("hero-split-screenshot", 10)
	require.Len(t, recs, 2)
	assert.Equal(t, "hero-centered", recs[0].ComponentID, "ordered by recorded frequency")
	assert.Equal(t, "Centered with background", recs[0].Name, "names resolved from the catalog")

	assert.Empty(t, m.RecommendAfter("unknown-id", 10))
	assert.Empty(t, m.RecommendBefore("hero-split-screenshot", 10))
}

func TestHintKeywords(t *testing.T) {
	assert.Equal(t, []string{"split", "screenshot"}, hintKeywords("hero-split-screenshot"))
	assert.Nil(t, hintKeywords("hero"))
	assert.Nil(t, hintKeywords(""))
}
