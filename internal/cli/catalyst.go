package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"draftkit/internal/catalyst"

	"github.com/spf13/cobra"
)

var catalystCmd = &cobra.Command{
	Use:   "catalyst [component]",
	Short: "Browse the Catalyst application UI kit",
	Long: `List Catalyst components, or print the source of one.

Examples:
  draftkit catalyst
  draftkit catalyst button
  draftkit catalyst dialog --language javascript`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalyst,
}

var catalystLanguage string

func init() {
	rootCmd.AddCommand(catalystCmd)
	catalystCmd.Flags().StringVarP(&catalystLanguage, "language", "l", "typescript", "language (typescript, javascript)")
}

func runCatalyst(cmd *cobra.Command, args []string) error {
	language, err := catalyst.ParseLanguage(catalystLanguage)
	if err != nil {
		return err
	}

	paths, _ := loadPaths()
	kit := catalyst.NewKit(paths)

	if len(args) == 0 {
		styler.PrintHeader("Catalyst components")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, comp := range kit.List(language) {
			fmt.Fprintf(w, "%s\t%s\n", comp.Name, comp.Description)
		}
		return w.Flush()
	}

	code, err := kit.Get(args[0], language)
	if err != nil {
		return err
	}
	fmt.Print(code)
	return nil
}
