package cli

import (
	"fmt"
	"os"

	"draftkit/internal/apperr"
	"draftkit/internal/cache"
	"draftkit/internal/catalog"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <component-id>",
	Short: "Print a component's source code",
	Long: `Print the source code for a component. Code is served from the local
cache; on a miss, the component is fetched from TailwindPlus using the
stored session (see 'draftkit auth') and cached for next time.

Examples:
  draftkit get hero-split
  draftkit get hero-split --framework vue --mode dark
  draftkit get pricing-three-tier -o pricing.jsx`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var (
	getFramework string
	getMode      string
	getOutput    string
)

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringVarP(&getFramework, "framework", "f", "react", "framework (react, vue, html)")
	getCmd.Flags().StringVarP(&getMode, "mode", "m", "light", "theme mode (light, dark, system, none)")
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "", "write code to file instead of stdout")
}

func runGet(cmd *cobra.Command, args []string) error {
	id := args[0]
	fw, err := catalog.ParseFramework(getFramework)
	if err != nil {
		return err
	}
	mode, err := catalog.ParseMode(getMode)
	if err != nil {
		return err
	}

	paths, _ := loadPaths()
	cat := openCatalog(paths)

	rec, ok := cat.FindByID(fw, id)
	if !ok {
		return apperr.NotFoundf("component %s not found; try draftkit search", id)
	}
	if !rec.HasMode(mode) {
		return apperr.InvalidInputf("component %s has no %s mode variant (available: %v)", id, mode, rec.Modes)
	}

	componentCache := cache.New(paths)
	code, ok := componentCache.Get(id, fw, mode)
	if !ok {
		fetcher, err := newFetcher(cmd.Context(), paths, componentCache)
		if err != nil {
			if apperr.IsNotFound(err) {
				return apperr.Statef("component %s is not cached and no session is stored; run draftkit auth", id)
			}
			return err
		}
		code, err = fetcher.FetchComponent(cmd.Context(), rec.UUID, rec.Category, rec.Subcategory, rec.SubSubcategory, fw, mode)
		if err != nil {
			return err
		}
	}

	if getOutput != "" {
		if err := os.WriteFile(getOutput, []byte(code), 0o644); err != nil {
			return err
		}
		styler.PrintSuccess(fmt.Sprintf("Wrote %s", getOutput))
		return nil
	}
	fmt.Print(code)
	if len(code) > 0 && code[len(code)-1] != '\n' {
		fmt.Println()
	}
	return nil
}
