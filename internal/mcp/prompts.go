package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ImplementUIPrompt handles the implement-ui MCP prompt.
type ImplementUIPrompt struct{}

func NewImplementUIPrompt() *ImplementUIPrompt {
	return &ImplementUIPrompt{}
}

func (p *ImplementUIPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("implement-ui",
		mcp.WithPromptDescription("Implement a UI feature using TailwindPlus components"),
		mcp.WithArgument("description",
			mcp.ArgumentDescription("What UI do you need? (e.g., 'login form', 'pricing table')"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("framework",
			mcp.ArgumentDescription("Target framework: react, vue, or html"),
			mcp.RequiredArgument(),
		),
	)
}

func (p *ImplementUIPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	description := "(not provided)"
	framework := "react"
	if args := req.Params.Arguments; args != nil {
		if d, ok := args["description"]; ok && d != "" {
			description = d
		}
		if f, ok := args["framework"]; ok && f != "" {
			framework = f
		}
	}

	text := fmt.Sprintf(`Help me implement: %s

Use TailwindPlus components in %s with Tailwind CSS v4.

Steps:
1. Search for relevant components using search_components
2. Get the component code with get_component
3. Adapt it to the specific requirements
4. Explain any customizations needed`, description, framework)

	return &mcp.GetPromptResult{
		Description: "Implement a UI feature using TailwindPlus components",
		Messages: []mcp.PromptMessage{
			{Role: mcp.RoleUser, Content: mcp.NewTextContent(text)},
		},
	}, nil
}

// ExplainUtilityPrompt handles the explain-utility MCP prompt.
type ExplainUtilityPrompt struct{}

func NewExplainUtilityPrompt() *ExplainUtilityPrompt {
	return &ExplainUtilityPrompt{}
}

func (p *ExplainUtilityPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("explain-utility",
		mcp.WithPromptDescription("Explain a Tailwind CSS utility class"),
		mcp.WithArgument("utility",
			mcp.ArgumentDescription("The utility class to explain (e.g., 'flex', 'grid-cols-3')"),
			mcp.RequiredArgument(),
		),
	)
}

func (p *ExplainUtilityPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	utility := "(not provided)"
	if args := req.Params.Arguments; args != nil {
		if u, ok := args["utility"]; ok && u != "" {
			utility = u
		}
	}

	text := fmt.Sprintf(`Explain the Tailwind CSS utility: %s

Include:
- What it does
- CSS properties it sets
- Common use cases
- Related utilities

Use get_tailwind_docs to get detailed documentation.`, utility)

	return &mcp.GetPromptResult{
		Description: "Explain a Tailwind CSS utility class",
		Messages: []mcp.PromptMessage{
			{Role: mcp.RoleUser, Content: mcp.NewTextContent(text)},
		},
	}, nil
}
