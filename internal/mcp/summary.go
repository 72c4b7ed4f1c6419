package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"draftkit/internal/catalog"
	"draftkit/internal/catalyst"
	"draftkit/internal/docs"
	"draftkit/internal/elements"
)

// SummaryTool handles the get_summary MCP tool.
type SummaryTool struct {
	deps Deps
}

func NewSummaryTool(deps Deps) *SummaryTool {
	return &SummaryTool{deps: deps}
}

func (t *SummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_summary",
		mcp.WithDescription(
			"Get a summary of everything this MCP server provides, including component "+
				"counts, available tools, and composition patterns.",
		),
	)
}

func (t *SummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var categoryLines []string
	for _, cat := range t.deps.Catalog.Categories(catalog.FrameworkReact) {
		categoryLines = append(categoryLines, fmt.Sprintf("  - %s: %d components", cat.Name, cat.Count))
	}

	var patternLines []string
	for _, p := range t.deps.Patterns.List() {
		patternLines = append(patternLines, fmt.Sprintf("  - %s: %s", p.ID, p.Name))
	}

	elementNames := make([]string, 0, 5)
	for _, e := range elements.Elements[:min(5, len(elements.Elements))] {
		elementNames = append(elementNames, e.Name)
	}

	intelligence := "not loaded (run draftkit analyze to build one)"
	if t.deps.Intelligence != nil {
		intelligence = fmt.Sprintf("%d component profiles from %d pages",
			len(t.deps.Intelligence.Components), t.deps.Intelligence.Metadata.TotalPages)
	}

	summary := fmt.Sprintf(`# Draftkit MCP Server Summary

## Server Info
- Version: %s
- Data source: %s

## UI Blocks
- Total components: %d
- Frameworks: React, Vue, HTML
- Modes: light, dark, system (v4 only)

### Categories
%s

## Catalyst UI Kit
- Components: %d atomic React components
- Languages: TypeScript (.tsx), JavaScript (.jsx)

## Elements (Web Components)
- Components: %d interactive components
- Examples: %s

## Tailwind CSS Documentation
- v3 topics: %d documentation pages
- v4 topics: %d documentation pages

## Composition
- Patterns:
%s
- Presets: %s
- Intelligence: %s

## Available Tools
1. **search_components** - Search UI Blocks by keyword
2. **get_component** - Get component code by ID
3. **list_categories** - Browse component categories
4. **list_catalyst_components** - List Catalyst components
5. **get_catalyst_component** - Get Catalyst source code
6. **list_elements** - List Elements components
7. **get_elements_docs** - Get Elements documentation
8. **get_tailwind_docs** - Get Tailwind CSS documentation (v3/v4)
9. **get_template_info** - Get template metadata
10. **list_patterns** - List page patterns
11. **generate_recipe** - Generate a page recipe from a pattern
12. **check_coherence** - Score page style coherence
13. **suggest_next_section** - Suggest the next page section
14. **get_summary** - This summary`,
		t.deps.Version,
		t.deps.Catalog.Source(),
		t.deps.Catalog.ComponentCount(catalog.FrameworkReact),
		strings.Join(categoryLines, "\n"),
		len(t.deps.Catalyst.List(catalyst.TypeScript)),
		len(elements.Elements),
		strings.Join(elementNames, ", "),
		len(docs.ListTopics(catalog.TailwindV3)),
		len(docs.ListTopics(catalog.TailwindV4)),
		strings.Join(patternLines, "\n"),
		strings.Join(t.deps.Presets.Names(), ", "),
		intelligence,
	)

	return mcp.NewToolResultText(summary), nil
}
