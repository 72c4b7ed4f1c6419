package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"draftkit/internal/catalog"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the component catalog",
	Long: `Search UI block components by name and category.

Examples:
  draftkit search "hero"
  draftkit search pricing --category marketing
  draftkit search "" --category ecommerce --limit 50
  draftkit search navbar --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var (
	searchFramework string
	searchCategory  string
	searchLimit     int
	searchJSON      bool
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchFramework, "framework", "f", "react", "framework (react, vue, html)")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "filter by top-level category")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	fw, err := catalog.ParseFramework(searchFramework)
	if err != nil {
		return err
	}

	paths, _ := loadPaths()
	cat := openCatalog(paths)

	records := cat.Search(fw, args[0])
	if searchCategory != "" {
		filtered := records[:0]
		for _, rec := range records {
			if strings.EqualFold(rec.Category, searchCategory) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}
	total := len(records)
	if searchLimit > 0 && len(records) > searchLimit {
		records = records[:searchLimit]
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		styler.PrintInfo("No components found.")
		return nil
	}

	styler.PrintHeader(fmt.Sprintf("Components (%d of %d)", len(records), total))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, rec := range records {
		taxonomy := rec.Category + "/" + rec.Subcategory
		if rec.SubSubcategory != "" {
			taxonomy += "/" + rec.SubSubcategory
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", rec.ID, rec.Name, taxonomy)
	}
	return w.Flush()
}
