package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/compose"
	"draftkit/internal/intel"
	"draftkit/internal/pattern"
	"draftkit/internal/style"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <page-name>",
	Short: "Build a page recipe from a pattern",
	Long: `Compose a page recipe: pick a variant for every section of a pattern,
fill content slots, and score the result for style coherence. The recipe
is written as JSON next to the current directory.

The active preset stack applies automatically; --preset layers more
presets on top for this run only.

Examples:
  draftkit generate index --pattern saas-landing
  draftkit generate index --pattern saas-landing --preset minimalist
  draftkit generate pricing --pattern saas-landing --emphasis pricing \
    --slots '{"hero":{"headline":"Ship faster"}}'`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	generatePattern  string
	generatePresets  []string
	generateEmphasis string
	generateStyle    string
	generateSlots    string
	generateOutput   string
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generatePattern, "pattern", "p", "", "pattern id (required)")
	generateCmd.Flags().StringSliceVar(&generatePresets, "preset", nil, "extra presets to layer on the active stack")
	generateCmd.Flags().StringVar(&generateEmphasis, "emphasis", "", "section type to emphasize")
	generateCmd.Flags().StringVar(&generateStyle, "style", "", "style preference (conservative, bold)")
	generateCmd.Flags().StringVar(&generateSlots, "slots", "", "slot values as JSON: {\"section\":{\"slot\":\"value\"}}")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "recipe path (default <page>.recipe.json)")
	generateCmd.MarkFlagRequired("pattern")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	pageName := args[0]

	patterns := newPatternStore()
	presets := newPresetStore()

	p, err := patterns.Get(generatePattern)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFoundf("unknown pattern %q; available: %s", generatePattern, strings.Join(patterns.IDs(), ", "))
		}
		return err
	}

	opts := compose.Options{}
	if generateEmphasis != "" {
		emphasis, err := pattern.ParseSectionType(generateEmphasis)
		if err != nil {
			return err
		}
		opts.Emphasis = emphasis
	}
	pref, err := compose.ParseStylePreference(generateStyle)
	if err != nil {
		return err
	}
	opts.StylePreference = pref

	if generateSlots != "" {
		var slots map[string]map[string]string
		if err := json.Unmarshal([]byte(generateSlots), &slots); err != nil {
			return apperr.InvalidInputf("invalid JSON in --slots: %v", err)
		}
		opts.SlotOverrides = slots
	}

	// Layer --preset on the active stack for this run only; the saved
	// stack itself is never touched.
	stack := append(presets.ActiveStack(), generatePresets...)
	prefs, err := presets.MergedVariantPreferencesFor(stack)
	if err != nil {
		return err
	}
	opts.VariantPreferences = prefs

	paths, _ := loadPaths()
	if ds, err := intel.Load(intelligencePath(paths)); err == nil && ds != nil {
		profiles := make(map[string]style.Profile, len(ds.Components))
		for id, comp := range ds.Components {
			profiles[id] = comp.Style
		}
		opts.ComponentProfiles = profiles
	}

	recipe, err := compose.NewBuilder().GenerateRecipe(p, opts)
	if err != nil {
		return err
	}

	outPath := generateOutput
	if outPath == "" {
		outPath = pageName + ".recipe.json"
	}
	data, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return err
	}

	styler.PrintHeader("Generated recipe")
	const kvWidth = 10
	styler.PrintKV("Page", pageName, kvWidth)
	styler.PrintKV("Pattern", p.ID, kvWidth)
	if len(generatePresets) > 0 {
		styler.PrintKV("Presets", strings.Join(generatePresets, ", "), kvWidth)
	}
	styler.PrintKV("Sections", fmt.Sprintf("%d", len(recipe.Sections)), kvWidth)
	styler.PrintKV("Coherence", fmt.Sprintf("%.2f", recipe.Coherence.Score), kvWidth)
	for _, sec := range recipe.Sections {
		styler.PrintInfo(fmt.Sprintf("%d. %s → %s", sec.Position, sec.SectionType, sec.VariantID))
	}
	if !recipe.IsValid() {
		for _, issue := range recipe.Coherence.Issues {
			styler.PrintWarning(issue.Message)
		}
	}
	if len(recipe.Dependencies) > 0 {
		styler.PrintInfo("Install dependencies: " + strings.Join(recipe.Dependencies, " "))
	}
	styler.PrintSuccess(fmt.Sprintf("Wrote %s", outPath))
	return nil
}
