// Package mcp exposes the catalog, docs, and composition engine as a Model
// Context Protocol stdio server.
//
// This file is the composition root: it creates the server and registers
// every tool and prompt. Each tool lives in its own struct with a
// Definition() schema and a Handle method; no business logic lives here.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"draftkit/internal/cache"
	"draftkit/internal/catalog"
	"draftkit/internal/catalyst"
	"draftkit/internal/docs"
	"draftkit/internal/elements"
	"draftkit/internal/intel"
	"draftkit/internal/pattern"
	"draftkit/internal/preset"
)

// Deps carries everything the tools need. Fetcher and Intelligence are
// optional; tools that need them degrade with a clear error instead.
type Deps struct {
	Version      string
	Catalog      *catalog.Catalog
	Cache        *cache.Cache
	Fetcher      ComponentFetcher
	Docs         *docs.Store
	Catalyst     *catalyst.Kit
	Elements     *elements.Store
	Patterns     *pattern.Store
	Presets      *preset.Store
	Intelligence *intel.Dataset
}

// New creates the MCP server with all tools and prompts registered.
func New(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"draftkit",
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	searchTool := NewSearchTool(deps.Catalog)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	getTool := NewGetComponentTool(deps.Catalog, deps.Cache, deps.Fetcher)
	s.AddTool(getTool.Definition(), getTool.Handle)

	categoriesTool := NewListCategoriesTool(deps.Catalog)
	s.AddTool(categoriesTool.Definition(), categoriesTool.Handle)

	docsTool := NewTailwindDocsTool(deps.Docs)
	s.AddTool(docsTool.Definition(), docsTool.Handle)

	catalystList := NewListCatalystTool(deps.Catalyst)
	s.AddTool(catalystList.Definition(), catalystList.Handle)

	catalystGet := NewGetCatalystTool(deps.Catalyst)
	s.AddTool(catalystGet.Definition(), catalystGet.Handle)

	elementsList := NewListElementsTool()
	s.AddTool(elementsList.Definition(), elementsList.Handle)

	elementsDocs := NewElementsDocsTool(deps.Elements)
	s.AddTool(elementsDocs.Definition(), elementsDocs.Handle)

	templateInfo := NewTemplateInfoTool()
	s.AddTool(templateInfo.Definition(), templateInfo.Handle)

	listPatterns := NewListPatternsTool(deps.Patterns)
	s.AddTool(listPatterns.Definition(), listPatterns.Handle)

	generateRecipe := NewGenerateRecipeTool(deps.Patterns, deps.Presets, deps.Intelligence)
	s.AddTool(generateRecipe.Definition(), generateRecipe.Handle)

	checkCoherence := NewCheckCoherenceTool(deps.Intelligence)
	s.AddTool(checkCoherence.Definition(), checkCoherence.Handle)

	suggestNext := NewSuggestNextSectionTool(deps.Patterns)
	s.AddTool(suggestNext.Definition(), suggestNext.Handle)

	summaryTool := NewSummaryTool(deps)
	s.AddTool(summaryTool.Definition(), summaryTool.Handle)

	implementUI := NewImplementUIPrompt()
	s.AddPrompt(implementUI.Definition(), implementUI.Handle)

	explainUtility := NewExplainUtilityPrompt()
	s.AddPrompt(explainUtility.Definition(), explainUtility.Handle)

	return s
}

func serverInstructions() string {
	return `TailwindPlus component browser, Tailwind CSS documentation, and page
composition server.

## UI Blocks
- search_components: Find components by keyword (returns IDs)
- get_component: Get component code by ID, framework, and mode
- list_categories: Browse component categories with counts

Frameworks: react, vue, html
Modes: light, dark, system

## Catalyst UI Kit (atomic React components)
- list_catalyst_components: List all available Catalyst components
- get_catalyst_component: Get component source code (TypeScript or JavaScript)

## Elements (interactive Web Components)
- list_elements: List all available Element components
- get_elements_docs: Get Element documentation (overview or specific component)

## Page composition
- list_patterns: List page archetypes (SaaS landing, marketing site, portfolio)
- generate_recipe: Turn a pattern plus presets into an ordered page plan
- check_coherence: Score style coherence across a list of components
- suggest_next_section: Propose what to add to a page in progress

## Other Tools
- get_tailwind_docs: Get Tailwind CSS utility documentation
- get_template_info: Get TailwindPlus template metadata
- get_summary: Summary of everything this server provides
`
}
