package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"draftkit/internal/apperr"
	"draftkit/internal/cache"
	"draftkit/internal/catalog"
)

// ComponentFetcher retrieves component source from upstream. Nil when the
// user has no stored session; cached code still works without one.
type ComponentFetcher interface {
	FetchComponent(ctx context.Context, uuid, category, subcategory, subSubcategory string, framework catalog.Framework, mode catalog.Mode) (string, error)
}

type searchResultItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Subcategory    string `json:"subcategory"`
	SubSubcategory string `json:"sub_subcategory"`
}

// SearchTool handles the search_components MCP tool.
type SearchTool struct {
	catalog *catalog.Catalog
}

func NewSearchTool(cat *catalog.Catalog) *SearchTool {
	return &SearchTool{catalog: cat}
}

func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_components",
		mcp.WithDescription(
			"Search TailwindPlus components by keyword. Returns matching component IDs, "+
				"names, and category paths. Use get_component to retrieve the actual code.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query (matches component names, categories, subcategories)"),
		),
		mcp.WithString("category",
			mcp.Description("Optional category filter (e.g., \"Application UI\", \"Marketing\", \"Ecommerce\")"),
		),
		mcp.WithString("framework",
			mcp.Description("Framework to search: react (default), vue, or html"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default: 20, max: 100)"),
		),
	)
}

func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	framework, err := catalog.ParseFramework(req.GetString("framework", "react"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category := req.GetString("category", "")
	limit := min(intArg(req, "limit", 20), 100)

	var items []searchResultItem
	for _, rec := range t.catalog.Search(framework, query) {
		if category != "" && !strings.EqualFold(rec.Category, category) {
			continue
		}
		items = append(items, searchResultItem{
			ID:             rec.ID,
			Name:           rec.Name,
			Category:       rec.Category,
			Subcategory:    rec.Subcategory,
			SubSubcategory: rec.SubSubcategory,
		})
		if len(items) >= limit {
			break
		}
	}

	if len(items) == 0 {
		return mcp.NewToolResultText("No components found matching your query."), nil
	}
	return jsonResult(items)
}

type componentCode struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Subcategory    string `json:"subcategory"`
	SubSubcategory string `json:"sub_subcategory"`
	Framework      string `json:"framework"`
	Mode           string `json:"mode"`
	Code           string `json:"code"`
	Preview        string `json:"preview,omitempty"`
}

// GetComponentTool handles the get_component MCP tool. Code is served from
// the local cache, falling back to an upstream fetch when a session exists.
type GetComponentTool struct {
	catalog *catalog.Catalog
	cache   *cache.Cache
	fetcher ComponentFetcher
}

func NewGetComponentTool(cat *catalog.Catalog, componentCache *cache.Cache, fetcher ComponentFetcher) *GetComponentTool {
	return &GetComponentTool{catalog: cat, cache: componentCache, fetcher: fetcher}
}

func (t *GetComponentTool) Definition() mcp.Tool {
	return mcp.NewTool("get_component",
		mcp.WithDescription(
			"Get component code by ID. Specify framework (react/vue/html) and mode "+
				"(light/dark/system). Returns the component code ready to use.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Component ID from search results"),
		),
		mcp.WithString("framework",
			mcp.Required(),
			mcp.Description("Target framework: html, react, or vue"),
		),
		mcp.WithString("mode",
			mcp.Required(),
			mcp.Description("Theme mode: light, dark, or system"),
		),
	)
}

func (t *GetComponentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	framework, err := catalog.ParseFramework(req.GetString("framework", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode, err := catalog.ParseMode(req.GetString("mode", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, ok := t.catalog.FindByID(framework, id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Component not found: %s", id)), nil
	}
	if !rec.HasMode(mode) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Component '%s' does not have a '%s' mode variant", id, mode)), nil
	}

	code, err := t.componentCode(ctx, rec, framework, mode)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := componentCode{
		ID:             rec.ID,
		Name:           rec.Name,
		Category:       rec.Category,
		Subcategory:    rec.Subcategory,
		SubSubcategory: rec.SubSubcategory,
		Framework:      framework.String(),
		Mode:           mode.String(),
		Code:           code,
	}
	if url, ok := rec.PreviewURL(mode); ok {
		response.Preview = url
	}
	return jsonResult(response)
}

func (t *GetComponentTool) componentCode(ctx context.Context, rec *catalog.ComponentRecord, framework catalog.Framework, mode catalog.Mode) (string, error) {
	if code, ok := t.cache.Get(rec.ID, framework, mode); ok {
		return code, nil
	}
	if t.fetcher == nil {
		return "", apperr.Statef("component code is not cached and no session is stored; run draftkit auth")
	}
	return t.fetcher.FetchComponent(ctx, rec.UUID, rec.Category, rec.Subcategory, rec.SubSubcategory, framework, mode)
}

// ListCategoriesTool handles the list_categories MCP tool.
type ListCategoriesTool struct {
	catalog *catalog.Catalog
}

func NewListCategoriesTool(cat *catalog.Catalog) *ListCategoriesTool {
	return &ListCategoriesTool{catalog: cat}
}

func (t *ListCategoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription(
			"List all component categories with counts. Returns the category hierarchy for browsing.",
		),
		mcp.WithString("framework",
			mcp.Description("Framework to count: react (default), vue, or html"),
		),
	)
}

func (t *ListCategoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	framework, err := catalog.ParseFramework(req.GetString("framework", "react"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(t.catalog.Categories(framework))
}
