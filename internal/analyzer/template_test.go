package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"draftkit/internal/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const heroSource = `export function HeroCentered() {
  return (
    <div className="bg-indigo-600 shadow-lg rounded-lg p-8">
      <h1 className="text-5xl font-semibold text-white">Ship faster</h1>
    </div>
  )
}
`

const pricingSource = `export function PricingThreeTier() {
  return (
    <section className="bg-gray-50 py-16 px-6">
      <h2 className="text-3xl text-gray-900">Pricing</h2>
    </section>
  )
}
`

func writeKit(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	sections := filepath.Join(root, "src", "components", "sections")
	require.NoError(t, os.MkdirAll(sections, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sections, "hero-centered.tsx"), []byte(heroSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sections, "pricing_three_tier.tsx"), []byte(pricingSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sections, "index.tsx"), []byte("export * from './hero-centered'\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sections, "notes.md"), []byte("not a section"), 0o644))

	app := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(app, 0o755))
	page := `import { HeroCentered } from '@/components/sections/hero-centered'
import { PricingThreeTier } from '@/components/sections/pricing_three_tier'

export default function Home() {
  return (
    <main>
      <HeroCentered />
      <PricingThreeTier />
    </main>
  )
}
`
	require.NoError(t, os.WriteFile(filepath.Join(app, "page.tsx"), []byte(page), 0o644))
	return root
}

func TestTemplateAnalyzer_Sections(t *testing.T) {
	root := writeKit(t)
	analyzer := NewTemplateAnalyzer()

	analysis, err := analyzer.AnalyzeTemplate(root)
	require.NoError(t, err)
	require.Len(t, analysis.Sections, 2, "index shims and non-tsx files are skipped")

	byID := make(map[string]SectionAnalysis)
	for _, s := range analysis.Sections {
		byID[s.ID] = s
	}

	hero, ok := byID["hero-centered"]
	require.True(t, ok)
	assert.Equal(t, "Hero Centered", hero.Name)
	assert.Equal(t, pattern.SectionHero, hero.SectionType)
	assert.Greater(t, hero.Style.VisualWeight, 0.0, "shadow and rounding register as weight")

	pricing, ok := byID["pricing-three-tier"]
	require.True(t, ok, "underscores normalize to hyphens")
	assert.Equal(t, pattern.SectionPricing, pricing.SectionType)
}

func TestTemplateAnalyzer_PageSequence(t *testing.T) {
	root := writeKit(t)
	analyzer := NewTemplateAnalyzer()

	analysis, err := analyzer.AnalyzeTemplate(root)
	require.NoError(t, err)
	require.Len(t, analysis.Pages, 1)

	page := analysis.Pages[0]
	assert.Equal(t, "home", page.Name)
	assert.Equal(t, []string{"hero-centered", "pricing-three-tier"}, page.Sections,
		"sections appear in render order, once each")
}

func TestTemplateAnalyzer_CachesByName(t *testing.T) {
	root := writeKit(t)
	analyzer := NewTemplateAnalyzer()

	first, err := analyzer.AnalyzeTemplate(root)
	require.NoError(t, err)
	second, err := analyzer.AnalyzeTemplate(root)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, analyzer.Analyses(), 1)
}

func TestTemplateAnalyzer_NoSectionsDir(t *testing.T) {
	analyzer := NewTemplateAnalyzer()
	_, err := analyzer.AnalyzeTemplate(t.TempDir())
	assert.Error(t, err)
}

func TestSectionTypeFromName(t *testing.T) {
	cases := map[string]pattern.SectionType{
		"hero-centered-with-demo": pattern.SectionHero,
		"features-two-column":     pattern.SectionFeatures,
		"pricing-three-tier":      pattern.SectionPricing,
		"testimonial-grid":        pattern.SectionTestimonial,
		"faq-accordion":           pattern.SectionFAQ,
		"cta-banner":              pattern.SectionCTA,
		"footer-simple":           pattern.SectionFooter,
		"navbar-sticky":           pattern.SectionHeader,
		"logo-cloud":              pattern.SectionSocialProof,
		"stats-band":              pattern.SectionSocialProof,
		"newsletter-signup":       pattern.SectionForm,
		"article-list":            pattern.SectionContent,
		"random-widget":           pattern.SectionOther,
	}
	for name, want := range cases {
		assert.Equal(t, want, sectionTypeFromName(name), "name %q", name)
	}
}
