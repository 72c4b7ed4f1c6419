package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"draftkit/internal/elements"

	"github.com/spf13/cobra"
)

var elementsCmd = &cobra.Command{
	Use:   "elements [element]",
	Short: "Browse Tailwind Elements interactive components",
	Long: `List the Elements web components, or render the documentation for one.

Examples:
  draftkit elements
  draftkit elements autocomplete
  draftkit elements el-dialog --plain`,
	Args: cobra.MaximumNArgs(1),
	RunE: runElements,
}

var elementsPlain bool

func init() {
	rootCmd.AddCommand(elementsCmd)
	elementsCmd.Flags().BoolVar(&elementsPlain, "plain", false, "print raw markdown without rendering")
}

func runElements(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		styler.PrintHeader("Tailwind Elements")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, info := range elements.Elements {
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Tag, info.Description)
		}
		return w.Flush()
	}

	paths, _ := loadPaths()
	store := elements.NewStore(paths)
	content, err := store.GetDocs(args[0])
	if err != nil {
		return err
	}
	return renderMarkdown(content, elementsPlain)
}
