package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"draftkit/internal/apperr"
	"draftkit/internal/catalog"
	"draftkit/internal/catalyst"
	"draftkit/internal/docs"
	"draftkit/internal/elements"
)

// TailwindDocsTool handles the get_tailwind_docs MCP tool.
type TailwindDocsTool struct {
	docs *docs.Store
}

func NewTailwindDocsTool(store *docs.Store) *TailwindDocsTool {
	return &TailwindDocsTool{docs: store}
}

func (t *TailwindDocsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_tailwind_docs",
		mcp.WithDescription(
			"Get Tailwind CSS documentation for a utility or concept. Supports v3 and v4 "+
				"(default). Topics include: flexbox, grid, spacing, sizing, typography, colors, "+
				"backgrounds, borders, effects, filters, transforms, transitions, interactivity, "+
				"states, responsive, dark-mode, accessibility, svg, forms. v4 adds: v4-changes. "+
				"Use 'index' for the full topic list.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Documentation topic (e.g., \"flexbox\", \"grid\", \"spacing\", \"typography\")"),
		),
		mcp.WithString("version",
			mcp.Description("Tailwind CSS version: \"v3\" or \"v4\" (default: \"v4\")"),
		),
	)
}

func (t *TailwindDocsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := req.GetString("topic", "")
	if topic == "" {
		return mcp.NewToolResultError("'topic' is required"), nil
	}
	version, err := catalog.ParseTailwindVersion(req.GetString("version", "v4"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	content, err := t.docs.Get(topic, version)
	if err == nil {
		return mcp.NewToolResultText(content), nil
	}
	if apperr.IsNotFound(err) && !strings.Contains(err.Error(), "Did you mean") {
		var lines []string
		for _, info := range docs.ListTopics(version) {
			lines = append(lines, fmt.Sprintf("  - %s: %s", info.Name, info.Description))
		}
		return mcp.NewToolResultError(fmt.Sprintf(
			"%v. Available topics:\n%s", err, strings.Join(lines, "\n"))), nil
	}
	return mcp.NewToolResultError(err.Error()), nil
}

// templateInfo is the static metadata for the official TailwindPlus
// templates.
var templateInfo = []map[string]any{
	{"name": "Oatmeal", "category": "SaaS Marketing", "tech_stack": []string{"React", "Next.js", "Tailwind CSS"}},
	{"name": "Spotlight", "category": "Personal Website", "tech_stack": []string{"React", "Next.js", "Tailwind CSS"}},
	{"name": "Radiant", "category": "SaaS Marketing", "tech_stack": []string{"React", "Next.js", "Tailwind CSS"}},
	{"name": "Compass", "category": "Course Platform", "tech_stack": []string{"React", "Next.js", "Tailwind CSS"}},
	{"name": "Protocol", "category": "API Reference", "tech_stack": []string{"React", "Next.js", "Tailwind CSS"}},
	{"name": "Syntax", "category": "Documentation", "tech_stack": []string{"React", "Next.js", "Tailwind CSS"}},
}

// TemplateInfoTool handles the get_template_info MCP tool.
type TemplateInfoTool struct{}

func NewTemplateInfoTool() *TemplateInfoTool {
	return &TemplateInfoTool{}
}

func (t *TemplateInfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_template_info",
		mcp.WithDescription(
			"Get TailwindPlus template information. Returns metadata about official templates.",
		),
		mcp.WithString("name",
			mcp.Description("Template name (optional - omit to list all templates)"),
		),
	)
}

func (t *TemplateInfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return jsonResult(templateInfo)
	}
	for _, tpl := range templateInfo {
		if tpl["name"] == name {
			return jsonResult(tpl)
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf("Template not found: %s", name)), nil
}

// ListCatalystTool handles the list_catalyst_components MCP tool.
type ListCatalystTool struct {
	kit *catalyst.Kit
}

func NewListCatalystTool(kit *catalyst.Kit) *ListCatalystTool {
	return &ListCatalystTool{kit: kit}
}

func (t *ListCatalystTool) Definition() mcp.Tool {
	return mcp.NewTool("list_catalyst_components",
		mcp.WithDescription(
			"List all available Catalyst UI Kit components. Catalyst provides atomic React "+
				"components for building production UIs with Tailwind CSS.",
		),
	)
}

func (t *ListCatalystTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type item struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	var items []item
	for _, c := range t.kit.List(catalyst.TypeScript) {
		items = append(items, item{Name: c.Name, Description: c.Description})
	}
	return jsonResult(items)
}

// GetCatalystTool handles the get_catalyst_component MCP tool.
type GetCatalystTool struct {
	kit *catalyst.Kit
}

func NewGetCatalystTool(kit *catalyst.Kit) *GetCatalystTool {
	return &GetCatalystTool{kit: kit}
}

func (t *GetCatalystTool) Definition() mcp.Tool {
	return mcp.NewTool("get_catalyst_component",
		mcp.WithDescription(
			"Get Catalyst UI Kit component source code. Returns the full component "+
				"implementation in TypeScript (.tsx) or JavaScript (.jsx).",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Component name (e.g., \"button\", \"dialog\", \"table\")"),
		),
		mcp.WithString("language",
			mcp.Description("Language: \"typescript\" (default) or \"javascript\""),
		),
	)
}

func (t *GetCatalystTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}
	language, err := catalyst.ParseLanguage(req.GetString("language", "typescript"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	code, err := t.kit.Get(name, language)
	if err != nil {
		if apperr.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"%v. Use list_catalyst_components to see available components.", err)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]string{
		"name":      name,
		"language":  language.String(),
		"extension": language.Ext(),
		"code":      code,
	})
}

// ListElementsTool handles the list_elements MCP tool.
type ListElementsTool struct{}

func NewListElementsTool() *ListElementsTool {
	return &ListElementsTool{}
}

func (t *ListElementsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_elements",
		mcp.WithDescription(
			"List all TailwindPlus Elements interactive Web Components. Elements provide "+
				"JavaScript-powered interactivity (dialogs, dropdowns, tabs, etc.) for HTML "+
				"snippets. Works with any framework.",
		),
	)
}

func (t *ListElementsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(elements.Elements)
}

// ElementsDocsTool handles the get_elements_docs MCP tool.
type ElementsDocsTool struct {
	store *elements.Store
}

func NewElementsDocsTool(store *elements.Store) *ElementsDocsTool {
	return &ElementsDocsTool{store: store}
}

func (t *ElementsDocsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_elements_docs",
		mcp.WithDescription(
			"Get TailwindPlus Elements documentation. Specify a component name (dialog, "+
				"dropdown-menu, tabs, etc.) for its API reference, or omit to get the overview "+
				"with installation instructions.",
		),
		mcp.WithString("component",
			mcp.Description("Element name (e.g., \"dialog\", \"dropdown-menu\", \"tabs\"). Leave empty for the overview documentation."),
		),
	)
}

func (t *ElementsDocsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("component", "")
	if name == "" {
		overview, err := t.store.Overview()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(overview), nil
	}

	content, err := t.store.GetDocs(name)
	if err != nil {
		if apperr.IsNotFound(err) {
			names := make([]string, len(elements.Elements))
			for i, e := range elements.Elements {
				names[i] = e.Name
			}
			return mcp.NewToolResultError(fmt.Sprintf(
				"%v. Available elements: %s", err, strings.Join(names, ", "))), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}
