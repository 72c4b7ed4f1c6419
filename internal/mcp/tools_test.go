package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftkit/internal/cache"
	"draftkit/internal/catalog"
	"draftkit/internal/config"
	"draftkit/internal/intel"
	"draftkit/internal/pattern"
	"draftkit/internal/preset"
	"draftkit/internal/style"
)

const testCorpus = `{"id":"hero-split","uuid":"u1","name":"Split with screenshot","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"Hero Sections","modes":["light","dark"]}
{"id":"pricing-three-tier","uuid":"u2","name":"Three tiers","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"Pricing Sections","modes":["light"]}
{"id":"product-list","uuid":"u3","name":"Product list","category":"Ecommerce","subcategory":"Components","sub_subcategory":"Product Lists","modes":["none"]}
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "react-v4.ndjson"), []byte(testCorpus), 0o644))
	return catalog.Load(dir)
}

func callTool(t *testing.T, handle func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handle(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestSearchTool(t *testing.T) {
	tool := NewSearchTool(testCatalog(t))

	result := callTool(t, tool.Handle, map[string]any{"query": "hero"})
	require.False(t, result.IsError)

	var items []searchResultItem
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "hero-split", items[0].ID)
	assert.Equal(t, "Marketing", items[0].Category)
}

func TestSearchTool_CategoryFilter(t *testing.T) {
	tool := NewSearchTool(testCatalog(t))

	result := callTool(t, tool.Handle, map[string]any{"query": "list", "category": "ecommerce"})
	var items []searchResultItem
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "product-list", items[0].ID)
}

func TestSearchTool_NoResults(t *testing.T) {
	tool := NewSearchTool(testCatalog(t))

	result := callTool(t, tool.Handle, map[string]any{"query": "quaternion"})
	assert.False(t, result.IsError)
	assert.Equal(t, "No components found matching your query.", resultText(t, result))
}

func TestSearchTool_MissingQuery(t *testing.T) {
	tool := NewSearchTool(testCatalog(t))

	result := callTool(t, tool.Handle, map[string]any{})
	assert.True(t, result.IsError)
}

func TestGetComponentTool_Cached(t *testing.T) {
	componentCache := cache.New(config.DataPaths{Root: t.TempDir()})
	_, err := componentCache.Store("hero-split", catalog.FrameworkReact, catalog.ModeLight, "<section>hero</section>")
	require.NoError(t, err)

	tool := NewGetComponentTool(testCatalog(t), componentCache, nil)
	result := callTool(t, tool.Handle, map[string]any{
		"id": "hero-split", "framework": "react", "mode": "light",
	})
	require.False(t, result.IsError, resultText(t, result))

	var response componentCode
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Equal(t, "hero-split", response.ID)
	assert.Equal(t, "react", response.Framework)
	assert.Equal(t, "<section>hero</section>", response.Code)
}

func TestGetComponentTool_NotCachedNoSession(t *testing.T) {
	tool := NewGetComponentTool(testCatalog(t), cache.New(config.DataPaths{Root: t.TempDir()}), nil)

	result := callTool(t, tool.Handle, map[string]any{
		"id": "hero-split", "framework": "react", "mode": "light",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "draftkit auth")
}

func TestGetComponentTool_UnknownID(t *testing.T) {
	tool := NewGetComponentTool(testCatalog(t), cache.New(config.DataPaths{Root: t.TempDir()}), nil)

	result := callTool(t, tool.Handle, map[string]any{
		"id": "nope", "framework": "react", "mode": "light",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Component not found: nope")
}

func TestGetComponentTool_ModeUnavailable(t *testing.T) {
	tool := NewGetComponentTool(testCatalog(t), cache.New(config.DataPaths{Root: t.TempDir()}), nil)

	result := callTool(t, tool.Handle, map[string]any{
		"id": "pricing-three-tier", "framework": "react", "mode": "dark",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "'dark' mode")
}

func TestListCategoriesTool(t *testing.T) {
	tool := NewListCategoriesTool(testCatalog(t))

	result := callTool(t, tool.Handle, map[string]any{})
	var categories []catalog.CategoryCount
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &categories))
	require.Len(t, categories, 2)
	assert.Equal(t, "Ecommerce", categories[0].Name)
	assert.Equal(t, 1, categories[0].Count)
	assert.Equal(t, "Marketing", categories[1].Name)
	assert.Equal(t, 2, categories[1].Count)
}

func testPatternStore(t *testing.T) *pattern.Store {
	t.Helper()
	return pattern.NewStore(filepath.Join(t.TempDir(), "user"), filepath.Join(t.TempDir(), "project"))
}

func testPresetStore(t *testing.T) *preset.Store {
	t.Helper()
	return preset.NewStore(filepath.Join(t.TempDir(), "user"), filepath.Join(t.TempDir(), "project"))
}

func TestListPatternsTool(t *testing.T) {
	tool := NewListPatternsTool(testPatternStore(t))

	result := callTool(t, tool.Handle, map[string]any{})
	text := resultText(t, result)
	assert.Contains(t, text, "saas-landing")
	assert.Contains(t, text, "marketing-site")
	assert.Contains(t, text, "portfolio")
}

func TestGenerateRecipeTool(t *testing.T) {
	tool := NewGenerateRecipeTool(testPatternStore(t), testPresetStore(t), nil)

	result := callTool(t, tool.Handle, map[string]any{"pattern_id": "saas-landing"})
	require.False(t, result.IsError, resultText(t, result))

	var recipe struct {
		PatternID string `json:"pattern_id"`
		Sections  []struct {
			SectionType string `json:"section_type"`
			VariantID   string `json:"variant_id"`
			Position    int    `json:"position"`
		} `json:"sections"`
		Coherence struct {
			Score float64 `json:"score"`
			Valid bool    `json:"valid"`
		} `json:"coherence"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &recipe))
	assert.Equal(t, "saas-landing", recipe.PatternID)
	require.NotEmpty(t, recipe.Sections)
	assert.Equal(t, "header", recipe.Sections[0].SectionType)
	// No component profiles: trivially coherent.
	assert.Equal(t, 1.0, recipe.Coherence.Score)
	assert.True(t, recipe.Coherence.Valid)
}

func TestGenerateRecipeTool_UnknownPattern(t *testing.T) {
	tool := NewGenerateRecipeTool(testPatternStore(t), testPresetStore(t), nil)

	result := callTool(t, tool.Handle, map[string]any{"pattern_id": "brutalist-blog"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Available patterns")
}

func TestGenerateRecipeTool_PresetArgumentLeavesStackAlone(t *testing.T) {
	presets := testPresetStore(t)
	require.NoError(t, presets.Activate("corporate"))
	tool := NewGenerateRecipeTool(testPatternStore(t), presets, nil)

	result := callTool(t, tool.Handle, map[string]any{
		"pattern_id": "saas-landing",
		"presets":    "minimalist",
	})
	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, []string{"corporate"}, presets.ActiveStack())
}

func TestGenerateRecipeTool_UnknownPreset(t *testing.T) {
	presets := testPresetStore(t)
	tool := NewGenerateRecipeTool(testPatternStore(t), presets, nil)

	result := callTool(t, tool.Handle, map[string]any{
		"pattern_id": "saas-landing",
		"presets":    "vaporwave",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "vaporwave")
	assert.Empty(t, presets.ActiveStack())
}

func TestGenerateRecipeTool_BadSlotsJSON(t *testing.T) {
	tool := NewGenerateRecipeTool(testPatternStore(t), testPresetStore(t), nil)

	result := callTool(t, tool.Handle, map[string]any{
		"pattern_id": "saas-landing",
		"slots":      "{not json",
	})
	assert.True(t, result.IsError)
}

func testIntelligence() *intel.Dataset {
	return &intel.Dataset{
		Components: map[string]intel.Component{
			"hero-split": {Style: style.Profile{
				VisualWeight: 0.5, Formality: 0.5, ColorIntensity: 0.4,
				SpacingDensity: 0.5, TypographyScale: style.ScaleLarge,
			}},
			"pricing-three-tier": {Style: style.Profile{
				VisualWeight: 0.5, Formality: 0.5, ColorIntensity: 0.4,
				SpacingDensity: 0.5, TypographyScale: style.ScaleLarge,
			}},
		},
		Metadata: intel.Metadata{TotalSections: 2, TotalPages: 1},
	}
}

func TestCheckCoherenceTool(t *testing.T) {
	tool := NewCheckCoherenceTool(testIntelligence())

	result := callTool(t, tool.Handle, map[string]any{
		"components": "hero-split, pricing-three-tier",
	})
	require.False(t, result.IsError, resultText(t, result))

	var report struct {
		Score float64 `json:"score"`
		Valid bool    `json:"valid"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	assert.InDelta(t, 1.0, report.Score, 1e-9)
	assert.True(t, report.Valid)
}

func TestCheckCoherenceTool_UnknownComponent(t *testing.T) {
	tool := NewCheckCoherenceTool(testIntelligence())

	result := callTool(t, tool.Handle, map[string]any{"components": "hero-split,mystery"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "mystery")
}

func TestCheckCoherenceTool_NoIntelligence(t *testing.T) {
	tool := NewCheckCoherenceTool(nil)

	result := callTool(t, tool.Handle, map[string]any{"components": "hero-split"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "draftkit analyze")
}

func TestSuggestNextSectionTool(t *testing.T) {
	tool := NewSuggestNextSectionTool(testPatternStore(t))

	result := callTool(t, tool.Handle, map[string]any{
		"pattern_id": "saas-landing",
		"present":    "header,hero",
	})
	require.False(t, result.IsError, resultText(t, result))

	var suggestions []struct {
		SectionType string  `json:"section_type"`
		Priority    float64 `json:"priority"`
		Reason      string  `json:"reason"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &suggestions))
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Required by pattern", suggestions[0].Reason)
}

func TestSuggestNextSectionTool_BadSectionType(t *testing.T) {
	tool := NewSuggestNextSectionTool(testPatternStore(t))

	result := callTool(t, tool.Handle, map[string]any{
		"pattern_id": "saas-landing",
		"present":    "header,sidebar",
	})
	assert.True(t, result.IsError)
}
