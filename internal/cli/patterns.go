package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Manage page patterns",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available page patterns",
	RunE:  runPatternsList,
}

var patternsListJSON bool

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.AddCommand(patternsListCmd)
	patternsListCmd.Flags().BoolVar(&patternsListJSON, "json", false, "output as JSON")
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	store := newPatternStore()

	if patternsListJSON {
		out := make([]patternInfo, 0)
		for _, p := range store.List() {
			out = append(out, patternInfo{
				ID:           p.ID,
				Name:         p.Name,
				Description:  p.Description,
				Source:       p.Source.String(),
				Tags:         p.Tags,
				SectionCount: len(p.Sections),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	styler.PrintHeader("Patterns")
	for _, p := range store.List() {
		styler.Printf("%s  (%s, %d sections)\n", p.ID, p.Source, len(p.Sections))
		for _, line := range strings.Split(styler.Wrap(p.Description, 72), "\n") {
			styler.Printf("    %s\n", line)
		}
	}
	return nil
}

type patternInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Source       string   `json:"source"`
	Tags         []string `json:"tags,omitempty"`
	SectionCount int      `json:"section_count"`
}
