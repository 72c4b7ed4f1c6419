package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"draftkit/internal/coherence"
	"draftkit/internal/compose"
	"draftkit/internal/intel"
	"draftkit/internal/pattern"
	"draftkit/internal/preset"
	"draftkit/internal/style"
)

// ListPatternsTool handles the list_patterns MCP tool.
type ListPatternsTool struct {
	patterns *pattern.Store
}

func NewListPatternsTool(store *pattern.Store) *ListPatternsTool {
	return &ListPatternsTool{patterns: store}
}

func (t *ListPatternsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_patterns",
		mcp.WithDescription(
			"List available page patterns (archetypes like \"SaaS landing page\"). Each "+
				"pattern defines ordered sections with variants and slots. Use generate_recipe "+
				"to turn a pattern into a concrete page plan.",
		),
	)
}

func (t *ListPatternsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type item struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Tags        []string `json:"tags,omitempty"`
		Sections    int      `json:"sections"`
		Source      string   `json:"source"`
	}
	var items []item
	for _, p := range t.patterns.List() {
		items = append(items, item{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Tags:        p.Tags,
			Sections:    len(p.Sections),
			Source:      p.Source.String(),
		})
	}
	return jsonResult(items)
}

// GenerateRecipeTool handles the generate_recipe MCP tool.
type GenerateRecipeTool struct {
	patterns     *pattern.Store
	presets      *preset.Store
	intelligence *intel.Dataset
	builder      *compose.Builder
}

func NewGenerateRecipeTool(patterns *pattern.Store, presets *preset.Store, intelligence *intel.Dataset) *GenerateRecipeTool {
	return &GenerateRecipeTool{
		patterns:     patterns,
		presets:      presets,
		intelligence: intelligence,
		builder:      compose.NewBuilder(),
	}
}

func (t *GenerateRecipeTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_recipe",
		mcp.WithDescription(
			"Generate a page recipe from a pattern: an ordered list of section variants "+
				"with slot defaults and a style-coherence score. Presets bias variant "+
				"selection; emphasis promotes a section's recommended variant.",
		),
		mcp.WithString("pattern_id",
			mcp.Required(),
			mcp.Description("Pattern ID from list_patterns (e.g., \"saas-landing\")"),
		),
		mcp.WithString("emphasis",
			mcp.Description("Section type to emphasize; its recommended variant is chosen (e.g., \"pricing\")"),
		),
		mcp.WithString("style_preference",
			mcp.Description("Variant bias: minimal, balanced, or bold"),
		),
		mcp.WithString("presets",
			mcp.Description("Comma-separated preset names to apply instead of the active stack"),
		),
		mcp.WithString("slots",
			mcp.Description("JSON object of slot overrides: {\"section_type\": {\"slot\": \"value\"}}"),
		),
	)
}

func (t *GenerateRecipeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := t.patterns.Get(req.GetString("pattern_id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf(
			"%v. Available patterns: %s", err, strings.Join(t.patterns.IDs(), ", "))), nil
	}

	opts := compose.Options{}

	if emphasis := req.GetString("emphasis", ""); emphasis != "" {
		sectionType, err := pattern.ParseSectionType(emphasis)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts.Emphasis = sectionType
	}

	opts.StylePreference, err = compose.ParseStylePreference(req.GetString("style_preference", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if slotsJSON := req.GetString("slots", ""); slotsJSON != "" {
		if err := json.Unmarshal([]byte(slotsJSON), &opts.SlotOverrides); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid 'slots' JSON: %v", err)), nil
		}
	}

	if stack := req.GetString("presets", ""); stack != "" {
		var names []string
		for _, name := range strings.Split(stack, ",") {
			names = append(names, strings.TrimSpace(name))
		}
		// The request stack is merged directly so concurrent tool calls
		// never observe each other's presets through shared state.
		prefs, err := t.presets.MergedVariantPreferencesFor(names)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts.VariantPreferences = prefs
	} else {
		opts.VariantPreferences = t.presets.MergedVariantPreferences()
	}

	if t.intelligence != nil {
		profiles := make(map[string]style.Profile, len(t.intelligence.Components))
		for id, comp := range t.intelligence.Components {
			profiles[id] = comp.Style
		}
		opts.ComponentProfiles = profiles
	}

	recipe, err := t.builder.GenerateRecipe(p, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(recipe)
}

// CheckCoherenceTool handles the check_coherence MCP tool.
type CheckCoherenceTool struct {
	intelligence *intel.Dataset
	checker      *coherence.Checker
}

func NewCheckCoherenceTool(intelligence *intel.Dataset) *CheckCoherenceTool {
	return &CheckCoherenceTool{intelligence: intelligence, checker: coherence.NewChecker()}
}

func (t *CheckCoherenceTool) Definition() mcp.Tool {
	return mcp.NewTool("check_coherence",
		mcp.WithDescription(
			"Score the visual coherence of a page built from a list of components, in "+
				"page order. Profiles come from the analyzed template intelligence dataset. "+
				"Returns a 0-1 score, validity, and per-pair issues with suggestions.",
		),
		mcp.WithString("components",
			mcp.Required(),
			mcp.Description("Comma-separated component IDs in page order (e.g., \"hero-split,pricing-three-tier\")"),
		),
	)
}

func (t *CheckCoherenceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("components", "")
	if raw == "" {
		return mcp.NewToolResultError("'components' is required"), nil
	}
	if t.intelligence == nil {
		return mcp.NewToolResultError("no intelligence dataset is loaded; run draftkit analyze first"), nil
	}

	var page []coherence.PageComponent
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		comp, ok := t.intelligence.Get(id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf(
				"no style profile for component %q in the intelligence dataset", id)), nil
		}
		page = append(page, coherence.PageComponent{ID: id, Profile: comp.Style})
	}

	return jsonResult(t.checker.CheckPageCoherence(page))
}

// SuggestNextSectionTool handles the suggest_next_section MCP tool.
type SuggestNextSectionTool struct {
	patterns *pattern.Store
}

func NewSuggestNextSectionTool(store *pattern.Store) *SuggestNextSectionTool {
	return &SuggestNextSectionTool{patterns: store}
}

func (t *SuggestNextSectionTool) Definition() mcp.Tool {
	return mcp.NewTool("suggest_next_section",
		mcp.WithDescription(
			"Suggest what section to add next to a page in progress, given its pattern "+
				"and the section types already present. Required-but-absent sections rank "+
				"highest; common flow suggestions follow.",
		),
		mcp.WithString("pattern_id",
			mcp.Required(),
			mcp.Description("Pattern ID from list_patterns"),
		),
		mcp.WithString("present",
			mcp.Description("Comma-separated section types already on the page (e.g., \"header,hero\")"),
		),
	)
}

func (t *SuggestNextSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := t.patterns.Get(req.GetString("pattern_id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf(
			"%v. Available patterns: %s", err, strings.Join(t.patterns.IDs(), ", "))), nil
	}

	var present []pattern.SectionType
	for _, name := range strings.Split(req.GetString("present", ""), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sectionType, err := pattern.ParseSectionType(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		present = append(present, sectionType)
	}

	suggestions := compose.SuggestNextSection(p, present)
	if len(suggestions) == 0 {
		return mcp.NewToolResultText("The page already covers every section this pattern calls for."), nil
	}
	return jsonResult(suggestions)
}
