package cli

import (
	"context"

	"draftkit/internal/cache"
	"draftkit/internal/catalyst"
	"draftkit/internal/docs"
	"draftkit/internal/elements"
	"draftkit/internal/intel"
	"draftkit/internal/logging"
	"draftkit/internal/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP stdio server",
	Long: `Start the Model Context Protocol server on stdio.

stdout carries only JSON-RPC frames; all diagnostics go to stderr. Point
your coding agent at this command:

  {"mcpServers": {"draftkit": {"command": "draftkit", "args": ["serve"]}}}`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	paths, _ := loadPaths()

	cat := openCatalog(paths)
	componentCache := cache.New(paths)

	deps := mcp.Deps{
		Version:  Version,
		Catalog:  cat,
		Cache:    componentCache,
		Docs:     docs.NewStore(paths),
		Catalyst: catalyst.NewKit(paths),
		Elements: elements.NewStore(paths),
		Patterns: newPatternStore(),
		Presets:  newPresetStore(),
	}

	// A fetcher needs a stored session and a reachable upstream. Either
	// missing just means get_component serves from cache only.
	if fetcher, err := newFetcher(cmd.Context(), paths, componentCache); err != nil {
		logging.Info("Serving without a component fetcher", "reason", err)
	} else {
		deps.Fetcher = fetcher
	}

	ds, err := intel.Load(intelligencePath(paths))
	if err != nil {
		logging.Warn("Failed to load intelligence dataset", "error", err)
	} else {
		deps.Intelligence = ds
	}

	logging.Info("Starting MCP server",
		"version", Version,
		"catalog", cat.Source().String(),
		"components", cat.TotalCount(),
	)

	srv := mcp.New(deps)
	if err := server.ServeStdio(srv); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
