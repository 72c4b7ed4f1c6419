package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"draftkit/internal/apperr"
	"draftkit/internal/config"
	"draftkit/internal/pattern"
	"draftkit/internal/preset"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage aesthetic presets",
	Long: `Presets are aesthetic overlays that bias how patterns select component
variants. They stack: later presets in the active stack override earlier
ones field by field.`,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsStackCmd)
	presetsCmd.AddCommand(presetsCreateCmd)
	presetsCmd.AddCommand(presetsValidateCmd)
	presetsCmd.AddCommand(presetsPickCmd)

	presetsListCmd.Flags().BoolVar(&presetsListPatternsOnly, "patterns-only", false, "show only patterns")
	presetsListCmd.Flags().BoolVar(&presetsListPresetsOnly, "presets-only", false, "show only presets")
	presetsListCmd.Flags().BoolVar(&presetsListJSON, "json", false, "output as JSON")

	presetsStackCmd.Flags().BoolVar(&stackClear, "clear", false, "clear the preset stack")
	presetsStackCmd.Flags().StringVar(&stackAdd, "add", "", "append a preset to the stack")
	presetsStackCmd.Flags().StringVar(&stackRemove, "remove", "", "remove a preset from the stack")

	presetsCreateCmd.Flags().StringVarP(&createOutput, "output", "o", "", "output directory (default: project presets dir)")
	presetsCreateCmd.Flags().BoolVar(&createForce, "force", false, "overwrite an existing file")

	presetsValidateCmd.Flags().BoolVar(&validateAsPattern, "pattern", false, "validate as a pattern file")
	presetsValidateCmd.Flags().BoolVar(&validateAsPreset, "preset", false, "validate as a preset file")
}

// ── list ────────────────────────────────────────────────────────────

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available patterns and presets",
	RunE:  runPresetsList,
}

var (
	presetsListPatternsOnly bool
	presetsListPresetsOnly  bool
	presetsListJSON         bool
)

type presetInfo struct {
	Name                  string   `json:"name"`
	Version               string   `json:"version,omitempty"`
	Description           string   `json:"description"`
	Source                string   `json:"source"`
	Extends               string   `json:"extends,omitempty"`
	Tags                  []string `json:"tags,omitempty"`
	HasStyleOverrides     bool     `json:"has_style_overrides"`
	VariantPreferences    int      `json:"variant_preferences_count"`
	BlacklistedComponents int      `json:"blacklist_count"`
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	patterns := newPatternStore()
	presets := newPresetStore()

	if presetsListJSON {
		out := struct {
			Patterns []patternInfo `json:"patterns"`
			Presets  []presetInfo  `json:"presets"`
		}{Patterns: []patternInfo{}, Presets: []presetInfo{}}
		if !presetsListPresetsOnly {
			for _, p := range patterns.List() {
				out.Patterns = append(out.Patterns, patternInfo{
					ID: p.ID, Name: p.Name, Description: p.Description,
					Source: p.Source.String(), Tags: p.Tags, SectionCount: len(p.Sections),
				})
			}
		}
		if !presetsListPatternsOnly {
			for _, p := range presets.List() {
				bl := len(p.Blacklist.Components) + len(p.Blacklist.Tags) + len(p.Blacklist.Categories)
				out.Presets = append(out.Presets, presetInfo{
					Name: p.Name, Version: p.Version, Description: p.Description,
					Source: p.Source.String(), Extends: p.Extends, Tags: p.Tags,
					HasStyleOverrides:     !p.StyleOverrides.IsEmpty(),
					VariantPreferences:    len(p.VariantPreferences),
					BlacklistedComponents: bl,
				})
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if !presetsListPresetsOnly {
		styler.PrintHeader("Patterns")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, p := range patterns.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.Source)
		}
		w.Flush()
		fmt.Println()
	}
	if !presetsListPatternsOnly {
		styler.PrintHeader("Presets")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		active := map[string]bool{}
		for _, name := range presets.ActiveStack() {
			active[name] = true
		}
		for _, p := range presets.List() {
			marker := ""
			if active[p.Name] {
				marker = "active"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Description, p.Source, marker)
		}
		w.Flush()
	}
	return nil
}

// ── stack ───────────────────────────────────────────────────────────

var presetsStackCmd = &cobra.Command{
	Use:   "stack [names...]",
	Short: "Show or set the active preset stack",
	Long: `With no arguments, print the active stack. With names, replace the
stack in the given order (first = base, last = highest priority).`,
	RunE: runPresetsStack,
}

var (
	stackClear  bool
	stackAdd    string
	stackRemove string
)

func runPresetsStack(cmd *cobra.Command, args []string) error {
	store := newPresetStore()

	changed := true
	switch {
	case stackClear:
		store.ClearActive()
		styler.PrintSuccess("Preset stack cleared")
	case stackAdd != "":
		if err := store.Activate(stackAdd); err != nil {
			return err
		}
		styler.PrintSuccess(fmt.Sprintf("Added %s to the stack", stackAdd))
	case stackRemove != "":
		store.Deactivate(stackRemove)
		styler.PrintSuccess(fmt.Sprintf("Removed %s from the stack", stackRemove))
	case len(args) > 0:
		if err := store.SetStack(args); err != nil {
			return err
		}
		styler.PrintSuccess(fmt.Sprintf("Preset stack set to %s", strings.Join(args, " → ")))
	default:
		changed = false
	}
	if changed {
		if err := store.SaveActive(); err != nil {
			return err
		}
	}

	stack := store.ActiveStack()
	if len(stack) == 0 {
		styler.PrintInfo("Preset stack is empty")
		return nil
	}
	styler.PrintHeader("Active stack")
	for i, name := range stack {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	return nil
}

// ── create ──────────────────────────────────────────────────────────

var presetsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a starter preset file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsCreate,
}

var (
	createOutput string
	createForce  bool
)

const presetTemplate = `[preset]
name = %q
version = "1.0"
description = "Describe the aesthetic here."
tags = []

# Bound any style axis with *_min / *_max values in [0, 1].
[preset.style_overrides]
# visual_weight_max = 0.5
# spacing_density_min = 0.4
# typography_scales = ["small", "medium"]

# Prefer specific variants per section type.
[preset.variant_preferences]
# hero = "hero-simple-centered"

# Exclude components by id, tag, or category.
[preset.blacklist]
# components = []
# tags = []
# categories = []
`

func runPresetsCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	dir := createOutput
	if dir == "" {
		dir = config.ProjectPresetsDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dir, name+".toml")
	if _, err := os.Stat(path); err == nil && !createForce {
		return apperr.InvalidInputf("%s already exists; use --force to overwrite", path)
	}
	if err := os.WriteFile(path, []byte(fmt.Sprintf(presetTemplate, name)), 0o644); err != nil {
		return err
	}

	styler.PrintSuccess(fmt.Sprintf("Created %s", path))
	styler.PrintInfo(fmt.Sprintf("Activate it with: draftkit presets stack --add %s", name))
	return nil
}

// ── validate ────────────────────────────────────────────────────────

var presetsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a pattern or preset TOML file",
	Long: `Parse a definition file and report problems. The file kind is detected
from its contents unless --pattern or --preset forces one.`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetsValidate,
}

var (
	validateAsPattern bool
	validateAsPreset  bool
)

func runPresetsValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	asPattern := validateAsPattern
	if !asPattern && !validateAsPreset {
		asPattern = strings.Contains(string(data), "[pattern]") || strings.Contains(string(data), "[[pattern.sections]]")
	}

	if asPattern {
		p, err := pattern.Parse(data, pattern.SourceProject)
		if err != nil {
			return err
		}
		styler.PrintSuccess(fmt.Sprintf("Valid pattern %q with %d sections", p.ID, len(p.Sections)))
		return nil
	}

	p, err := preset.Parse(data, preset.SourceProject)
	if err != nil {
		return err
	}
	styler.PrintSuccess(fmt.Sprintf("Valid preset %q", p.Name))
	if p.Extends != "" {
		styler.PrintInfo(fmt.Sprintf("Extends %s (resolved when the preset directory loads)", p.Extends))
	}
	return nil
}
