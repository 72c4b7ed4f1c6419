package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"draftkit/internal/catalog"
	"draftkit/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read Tailwind CSS documentation",
	Long: `Render a Tailwind CSS documentation topic, or list topics when no
topic is given.

Examples:
  draftkit docs
  draftkit docs flexbox-grid
  draftkit docs colors --version v3
  draftkit docs v4-changes --plain`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocs,
}

var (
	docsVersion string
	docsPlain   bool
)

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringVar(&docsVersion, "version", "v4", "Tailwind version (v3, v4)")
	docsCmd.Flags().BoolVar(&docsPlain, "plain", false, "print raw markdown without rendering")
}

func runDocs(cmd *cobra.Command, args []string) error {
	version, err := catalog.ParseTailwindVersion(docsVersion)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		styler.PrintHeader(fmt.Sprintf("Tailwind %s topics", version))
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, topic := range docs.ListTopics(version) {
			fmt.Fprintf(w, "%s\t%s\n", topic.Name, topic.Description)
		}
		return w.Flush()
	}

	paths, _ := loadPaths()
	store := docs.NewStore(paths)
	content, err := store.Get(args[0], version)
	if err != nil {
		return err
	}
	return renderMarkdown(content, docsPlain)
}

// renderMarkdown pretty-prints markdown on a terminal and falls back to the
// raw text when rendering is off or fails.
func renderMarkdown(content string, plain bool) error {
	if plain || !styler.ColorsEnabled() {
		fmt.Println(content)
		return nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(content)
		return nil
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		fmt.Println(content)
		return nil
	}
	fmt.Print(rendered)
	return nil
}
