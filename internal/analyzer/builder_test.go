package analyzer

import (
	"path/filepath"
	"testing"

	"draftkit/internal/intel"
	"draftkit/internal/pattern"
	"draftkit/internal/style"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockSection(id string, sectionType pattern.SectionType, weight float64) SectionAnalysis {
	return SectionAnalysis{
		ID:          id,
		Name:        titleFromID(id),
		SectionType: sectionType,
		Style: style.Profile{
			VisualWeight:    weight,
			Formality:       0.7,
			ColorIntensity:  0.4,
			SpacingDensity:  0.6,
			TypographyScale: style.ScaleMedium,
		},
	}
}

func TestIntelligenceBuilder_Empty(t *testing.T) {
	dataset := NewIntelligenceBuilder().Build()
	assert.Empty(t, dataset.Components)
	assert.Zero(t, dataset.Metadata.TotalPages)
}

func TestIntelligenceBuilder_Sequences(t *testing.T) {
	builder := NewIntelligenceBuilder()
	builder.AddTemplate(&TemplateAnalysis{
		Name: "oatmeal",
		Sections: []SectionAnalysis{
			mockSection("hero-simple", pattern.SectionHero, 0.5),
			mockSection("features-grid", pattern.SectionFeatures, 0.5),
			mockSection("pricing-simple", pattern.SectionPricing, 0.5),
		},
		Pages: []PageStructure{{
			Name:     "home",
			Sections: []string{"hero-simple", "features-grid", "pricing-simple"},
		}},
	})

	dataset := builder.Build()
	require.Len(t, dataset.Components, 3)
	assert.Equal(t, 3, dataset.Metadata.TotalSections)
	assert.Equal(t, 1, dataset.Metadata.TotalPages)

	hero := dataset.Components["hero-simple"]
	require.Len(t, hero.Usage.FollowedBy, 1)
	assert.Equal(t, "features-grid", hero.Usage.FollowedBy[0].ID)
	assert.Empty(t, hero.Usage.PrecededBy)
	assert.Equal(t, "hero", hero.Usage.Position)
	assert.Equal(t, []string{"Marketing", "hero"}, hero.Usage.Categories)
	assert.InDelta(t, 1.0, hero.Usage.Frequency, 1e-9, "appears on the only page")

	features := dataset.Components["features-grid"]
	assert.Equal(t, "hero-simple", features.Usage.PrecededBy[0].ID)
	assert.Equal(t, "pricing-simple", features.Usage.FollowedBy[0].ID)
}

func TestIntelligenceBuilder_AveragesProfiles(t *testing.T) {
	builder := NewIntelligenceBuilder()
	builder.AddTemplate(&TemplateAnalysis{
		Name:     "oatmeal",
		Sections: []SectionAnalysis{mockSection("hero-simple", pattern.SectionHero, 0.2)},
	})
	builder.AddTemplate(&TemplateAnalysis{
		Name:     "radiant",
		Sections: []SectionAnalysis{mockSection("hero-simple", pattern.SectionHero, 0.8)},
	})

	dataset := builder.Build()
	hero := dataset.Components["hero-simple"]
	assert.InDelta(t, 0.5, hero.Style.VisualWeight, 1e-9)
	assert.Equal(t, style.ScaleMedium, hero.Style.TypographyScale)
}

func TestIntelligenceBuilder_TopFiveNeighbors(t *testing.T) {
	builder := NewIntelligenceBuilder()
	analysis := &TemplateAnalysis{
		Name:     "oatmeal",
		Sections: []SectionAnalysis{mockSection("hero-simple", pattern.SectionHero, 0.5)},
	}
	// Seven pages, each pairing the hero with a different successor;
	// "cta-0" follows twice so it must rank first.
	for i := 0; i < 7; i++ {
		next := "cta-" + string(rune('0'+i))
		analysis.Pages = append(analysis.Pages, PageStructure{
			Name:     "home",
			Sections: []string{"hero-simple", next},
		})
	}
	analysis.Pages = append(analysis.Pages, PageStructure{
		Name:     "home",
		Sections: []string{"hero-simple", "cta-0"},
	})

	builder.AddTemplate(analysis)
	dataset := builder.Build()

	followed := dataset.Components["hero-simple"].Usage.FollowedBy
	require.Len(t, followed, 5)
	assert.Equal(t, "cta-0", followed[0].ID)
	assert.Equal(t, 2, followed[0].Count)
}

func TestIntelligenceBuilder_PageTypesFromTemplateNames(t *testing.T) {
	assert.Equal(t, []string{"saas"}, inferSitePageTypes([]string{"commit"}))
	assert.Equal(t, []string{"documentation"}, inferSitePageTypes([]string{"protocol"}))
	assert.Equal(t, []string{"marketing", "ecommerce"}, inferSitePageTypes([]string{"landing-store"}))
	assert.Equal(t, []string{"landing"}, inferSitePageTypes([]string{"oatmeal"}))
}

func TestIntelligenceBuilder_WritesDataset(t *testing.T) {
	builder := NewIntelligenceBuilder()
	builder.AddTemplate(&TemplateAnalysis{
		Name:     "oatmeal",
		Sections: []SectionAnalysis{mockSection("hero-simple", pattern.SectionHero, 0.5)},
	})

	path := filepath.Join(t.TempDir(), "component-intelligence.json")
	require.NoError(t, builder.Build().Write(path))

	loaded, err := intel.Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	_, ok := loaded.Get("hero-simple")
	assert.True(t, ok)
}
