package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/catalog"
	"draftkit/internal/compose"
	"draftkit/internal/scaffold"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Scaffold a new Tailwind project",
	Long: `Create a project directory with a framework template, Tailwind CSS,
and an initial page. With --pattern the page is composed from that
pattern; otherwise a welcome placeholder is written.

Examples:
  draftkit init my-site
  draftkit init my-site --framework vite-react --pattern saas-landing
  draftkit init landing -p saas-landing --preset minimalist --skip-install`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

var (
	initFramework      string
	initPackageManager string
	initPattern        string
	initPreset         string
	initTailwind       string
	initSkipInstall    bool
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initFramework, "framework", "f", "vite-react", "target framework (html, vite-react, nextjs)")
	initCmd.Flags().StringVarP(&initPackageManager, "package-manager", "m", "", "package manager (npm, pnpm, yarn, bun; default auto-detect)")
	initCmd.Flags().StringVarP(&initPattern, "pattern", "p", "", "compose the initial page from this pattern")
	initCmd.Flags().StringVar(&initPreset, "preset", "", "preset biasing variant selection for the initial page")
	initCmd.Flags().StringVar(&initTailwind, "tailwind", "v4", "Tailwind CSS version (v3, v4)")
	initCmd.Flags().BoolVar(&initSkipInstall, "skip-install", false, "skip running the package install")
}

func runInit(cmd *cobra.Command, args []string) error {
	name := args[0]

	target, err := scaffold.ParseFrameworkTarget(initFramework)
	if err != nil {
		return err
	}
	tailwind, err := catalog.ParseTailwindVersion(initTailwind)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg := scaffold.NewProjectConfig(name, cwd)
	cfg.Framework = target
	cfg.Tailwind = tailwind
	cfg.Pattern = initPattern
	cfg.Preset = initPreset
	cfg.SkipInstall = initSkipInstall

	if _, err := os.Stat(cfg.Dir); err == nil {
		return apperr.InvalidInputf("directory %q already exists; choose another name or remove it first", name)
	}

	var preference scaffold.PackageManager
	if initPackageManager != "" {
		if preference, err = scaffold.ParsePackageManager(initPackageManager); err != nil {
			return err
		}
	}
	cfg.PackageManager = scaffold.DetectPackageManager(cwd, preference)

	styler.PrintHeader("Creating new project")
	const kvWidth = 15
	styler.PrintKV("Name", cfg.Name, kvWidth)
	styler.PrintKV("Framework", cfg.Framework.String(), kvWidth)
	styler.PrintKV("Package manager", cfg.PackageManager.String(), kvWidth)
	styler.PrintKV("Tailwind", string(cfg.Tailwind), kvWidth)
	if cfg.Pattern != "" {
		styler.PrintKV("Pattern", cfg.Pattern, kvWidth)
	}
	if cfg.Preset != "" {
		styler.PrintKV("Preset", cfg.Preset, kvWidth)
	}

	created, err := scaffold.NewEngine(cfg).Scaffold(cfg)
	if err != nil {
		return err
	}

	page, err := initialPage(cfg)
	if err != nil {
		return err
	}
	if err := scaffold.WritePage(page); err != nil {
		return err
	}
	styler.PrintSuccess(fmt.Sprintf("Created %d files", len(created)+1))

	if !cfg.SkipInstall {
		if err := runInstall(cmd, cfg); err != nil {
			return err
		}
	}

	styler.PrintSuccess(fmt.Sprintf("Project %q created", cfg.Name))
	styler.Println("")
	styler.Println("Next steps:")
	styler.Println("  cd " + cfg.Name)
	if cfg.SkipInstall {
		styler.Println("  " + strings.Join(cfg.PackageManager.InstallCmd(), " "))
	}
	styler.Println("  " + strings.Join(cfg.PackageManager.DevCmd(), " "))
	styler.PrintInfo(fmt.Sprintf("Your site will be available at http://localhost:%d", cfg.Framework.DefaultPort()))
	return nil
}

// initialPage composes the first page from the configured pattern, or the
// welcome placeholder when none was given.
func initialPage(cfg scaffold.ProjectConfig) (scaffold.GeneratedPage, error) {
	if cfg.Pattern == "" {
		return scaffold.GeneratePlaceholder(cfg), nil
	}

	patterns := newPatternStore()
	p, err := patterns.Get(cfg.Pattern)
	if err != nil {
		if apperr.IsNotFound(err) {
			return scaffold.GeneratedPage{}, apperr.NotFoundf(
				"unknown pattern %q; available: %s", cfg.Pattern, strings.Join(patterns.IDs(), ", "))
		}
		return scaffold.GeneratedPage{}, err
	}

	opts := compose.Options{}
	if cfg.Preset != "" {
		presets := newPresetStore()
		prefs, err := presets.MergedVariantPreferencesFor([]string{cfg.Preset})
		if err != nil {
			return scaffold.GeneratedPage{}, err
		}
		opts.VariantPreferences = prefs
	}

	recipe, err := compose.NewBuilder().GenerateRecipe(p, opts)
	if err != nil {
		return scaffold.GeneratedPage{}, err
	}
	styler.PrintInfo(fmt.Sprintf("Composed %d sections from %q", len(recipe.Sections), cfg.Pattern))
	return scaffold.GenerateFromRecipe(recipe, cfg, nil), nil
}

func runInstall(cmd *cobra.Command, cfg scaffold.ProjectConfig) error {
	line := cfg.PackageManager.InstallCmd()
	styler.PrintInfo("Installing dependencies with " + cfg.PackageManager.String())

	install := exec.CommandContext(cmd.Context(), line[0], line[1:]...)
	install.Dir = cfg.Dir
	install.Stdout = os.Stdout
	install.Stderr = os.Stderr
	if err := install.Run(); err != nil {
		return apperr.Transientf("package install failed: %v", err)
	}
	styler.PrintSuccess("Dependencies installed")
	return nil
}
