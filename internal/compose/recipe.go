package compose

import (
	"sort"
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/coherence"
	"draftkit/internal/pattern"
	"draftkit/internal/style"
)

// StylePreference biases variant selection when no stronger signal applies.
type StylePreference int

const (
	PreferenceNone StylePreference = iota
	PreferenceMinimal
	PreferenceBalanced
	PreferenceBold
)

func ParseStylePreference(s string) (StylePreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PreferenceNone, nil
	case "minimal":
		return PreferenceMinimal, nil
	case "balanced":
		return PreferenceBalanced, nil
	case "bold":
		return PreferenceBold, nil
	default:
		return PreferenceNone, apperr.InvalidInputf("unknown style preference %q (expected minimal, balanced, or bold)", s)
	}
}

// Options steer recipe generation. ComponentProfiles keys are variant ids;
// without any the coherence report is trivially valid, there being nothing
// to verify.
type Options struct {
	Emphasis        pattern.SectionType
	StylePreference StylePreference
	// VariantPreferences maps section type to a preferred variant id,
	// typically the merged preference of the active preset stack. A
	// preference only applies when the section defines that variant.
	VariantPreferences map[string]string
	// SlotOverrides maps section type to slot name to value, applied after
	// defaults.
	SlotOverrides     map[string]map[string]string
	ComponentProfiles map[string]style.Profile
}

// RecipeSection is one placed section of the output page.
type RecipeSection struct {
	SectionType string            `json:"section_type"`
	VariantID   string            `json:"variant_id"`
	Position    int               `json:"position"`
	Slots       map[string]string `json:"slots,omitempty"`
}

// Recipe is a validated, ordered page plan.
type Recipe struct {
	PatternID    string                  `json:"pattern_id"`
	Sections     []RecipeSection         `json:"sections"`
	Coherence    coherence.PageCoherence `json:"coherence"`
	Dependencies []string                `json:"dependencies,omitempty"`
}

func (r *Recipe) IsValid() bool { return r.Coherence.Valid }

// Builder assembles recipes. It owns a coherence checker and nothing else;
// patterns and profiles arrive per call.
type Builder struct {
	checker *coherence.Checker
}

func NewBuilder() *Builder {
	return &Builder{checker: coherence.NewChecker()}
}

// GenerateRecipe applies options to a pattern. Section order follows the
// pattern's positions strictly; a single failing section aborts the whole
// recipe.
func (b *Builder) GenerateRecipe(p *pattern.Pattern, opts Options) (*Recipe, error) {
	sections := make([]RecipeSection, 0, len(p.Sections))
	for i := range p.Sections {
		sec := &p.Sections[i]
		variant, err := chooseVariant(sec, opts)
		if err != nil {
			return nil, err
		}
		sections = append(sections, RecipeSection{
			SectionType: string(sec.Type),
			VariantID:   variant.ID,
			Position:    sec.Position,
			Slots:       fillSlots(sec, opts.SlotOverrides[string(sec.Type)]),
		})
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Position < sections[j].Position
	})

	recipe := &Recipe{
		PatternID:    p.ID,
		Sections:     sections,
		Dependencies: append([]string(nil), p.Dependencies...),
	}
	recipe.Coherence = b.scoreCoherence(p, sections, opts.ComponentProfiles)
	return recipe, nil
}

// chooseVariant resolves one section. Order: emphasis picks the
// recommended variant, then a stack preference that the section actually
// defines, then the style-preference rule over weights.
func chooseVariant(sec *pattern.SectionSpec, opts Options) (pattern.VariantSpec, error) {
	if len(sec.Variants) == 0 {
		return pattern.VariantSpec{}, apperr.Validationf("section %q defines no variants", sec.Type)
	}

	if opts.Emphasis == sec.Type {
		if rec, ok := sec.RecommendedVariant(); ok {
			return rec, nil
		}
	}

	if preferred, ok := opts.VariantPreferences[string(sec.Type)]; ok {
		for _, v := range sec.Variants {
			if v.ID == preferred {
				return v, nil
			}
		}
	}

	switch opts.StylePreference {
	case PreferenceMinimal:
		return sec.Variants[0], nil
	case PreferenceBold:
		return sec.Variants[len(sec.Variants)-1], nil
	default:
		best := sec.Variants[0]
		for _, v := range sec.Variants[1:] {
			if v.Weight > best.Weight {
				best = v
			}
		}
		return best, nil
	}
}

// fillSlots takes the declared default, falling back to the example, then
// applies caller overrides. Slots with neither stay unset.
func fillSlots(sec *pattern.SectionSpec, overrides map[string]string) map[string]string {
	if len(sec.Slots) == 0 && len(overrides) == 0 {
		return nil
	}
	slots := make(map[string]string)
	for _, slot := range sec.Slots {
		switch {
		case slot.Default != "":
			slots[slot.Name] = slot.Default
		case slot.Example != "":
			slots[slot.Name] = slot.Example
		}
	}
	for name, value := range overrides {
		slots[name] = value
	}
	if len(slots) == 0 {
		return nil
	}
	return slots
}

func (b *Builder) scoreCoherence(p *pattern.Pattern, sections []RecipeSection, profiles map[string]style.Profile) coherence.PageCoherence {
	if len(profiles) == 0 {
		return coherence.PageCoherence{Score: 1.0, Valid: true}
	}
	var components []coherence.PageComponent
	for _, sec := range sections {
		profile, ok := profiles[sec.VariantID]
		if !ok {
			continue
		}
		components = append(components, coherence.PageComponent{ID: sec.VariantID, Profile: profile})
	}
	return b.checker.CheckPageCoherenceWithConstraints(components, p.StyleConstraints)
}
