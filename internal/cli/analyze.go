package cli

import (
	"fmt"

	"draftkit/internal/analyzer"
	"draftkit/internal/apperr"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <template-dir>...",
	Short: "Build the component intelligence dataset from template kits",
	Long: `Analyze one or more template directories: extract per-section style
profiles and co-occurrence data, and write the combined dataset to
component-intelligence.json in the data directory. The dataset powers
coherence scoring in generate and the MCP composition tools.

Examples:
  draftkit analyze ~/templates/spotlight
  draftkit analyze ~/templates/* -o ./component-intelligence.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var analyzeOutput string

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "dataset path (default: data dir)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	templateAnalyzer := analyzer.NewTemplateAnalyzer()
	builder := analyzer.NewIntelligenceBuilder()

	analyzed := 0
	for _, dir := range args {
		analysis, err := templateAnalyzer.AnalyzeTemplate(dir)
		if err != nil {
			styler.PrintWarning(fmt.Sprintf("Skipping %s: %v", dir, err))
			continue
		}
		builder.AddTemplate(analysis)
		analyzed++
		styler.PrintInfo(fmt.Sprintf("Analyzed %s: %d sections, %d pages",
			analysis.Name, len(analysis.Sections), len(analysis.Pages)))
	}
	if analyzed == 0 {
		return apperr.InvalidInputf("no usable template directories")
	}

	dataset := builder.Build()

	outPath := analyzeOutput
	if outPath == "" {
		paths, _ := loadPaths()
		outPath = intelligencePath(paths)
	}
	if err := dataset.Write(outPath); err != nil {
		return err
	}

	styler.PrintSuccess(fmt.Sprintf("Wrote %s", outPath))
	const kvWidth = 10
	styler.PrintKV("Components", fmt.Sprintf("%d", len(dataset.Components)), kvWidth)
	styler.PrintKV("Sections", fmt.Sprintf("%d", dataset.Metadata.TotalSections), kvWidth)
	styler.PrintKV("Pages", fmt.Sprintf("%d", dataset.Metadata.TotalPages), kvWidth)
	return nil
}
