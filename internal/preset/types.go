// Package preset loads aesthetic overlays and manages the active preset
// stack. Presets stack in activation order, later entries overriding
// earlier ones field by field; each preset may extend a parent, resolved
// root-first at query time.
package preset

import (
	"draftkit/internal/apperr"
	"draftkit/internal/style"

	"github.com/BurntSushi/toml"
)

// StyleOverrides carries optional bounds per style axis. Nil means the
// preset does not constrain that bound.
type StyleOverrides struct {
	VisualWeightMin   *float64 `json:"visual_weight_min,omitempty" toml:"visual_weight_min"`
	VisualWeightMax   *float64 `json:"visual_weight_max,omitempty" toml:"visual_weight_max"`
	FormalityMin      *float64 `json:"formality_min,omitempty" toml:"formality_min"`
	FormalityMax      *float64 `json:"formality_max,omitempty" toml:"formality_max"`
	ColorIntensityMin *float64 `json:"color_intensity_min,omitempty" toml:"color_intensity_min"`
	ColorIntensityMax *float64 `json:"color_intensity_max,omitempty" toml:"color_intensity_max"`
	SpacingDensityMin *float64 `json:"spacing_density_min,omitempty" toml:"spacing_density_min"`
	SpacingDensityMax *float64 `json:"spacing_density_max,omitempty" toml:"spacing_density_max"`

	TypographyScales []style.TypographyScale `json:"typography_scales,omitempty" toml:"typography_scales"`
}

// apply folds other on top of o; set fields in other win.
func (o *StyleOverrides) apply(other StyleOverrides) {
	if other.VisualWeightMin != nil {
		o.VisualWeightMin = other.VisualWeightMin
	}
	if other.VisualWeightMax != nil {
		o.VisualWeightMax = other.VisualWeightMax
	}
	if other.FormalityMin != nil {
		o.FormalityMin = other.FormalityMin
	}
	if other.FormalityMax != nil {
		o.FormalityMax = other.FormalityMax
	}
	if other.ColorIntensityMin != nil {
		o.ColorIntensityMin = other.ColorIntensityMin
	}
	if other.ColorIntensityMax != nil {
		o.ColorIntensityMax = other.ColorIntensityMax
	}
	if other.SpacingDensityMin != nil {
		o.SpacingDensityMin = other.SpacingDensityMin
	}
	if other.SpacingDensityMax != nil {
		o.SpacingDensityMax = other.SpacingDensityMax
	}
	if len(other.TypographyScales) > 0 {
		o.TypographyScales = other.TypographyScales
	}
}

// IsEmpty reports whether no field is set.
func (o StyleOverrides) IsEmpty() bool {
	return o.VisualWeightMin == nil && o.VisualWeightMax == nil &&
		o.FormalityMin == nil && o.FormalityMax == nil &&
		o.ColorIntensityMin == nil && o.ColorIntensityMax == nil &&
		o.SpacingDensityMin == nil && o.SpacingDensityMax == nil &&
		len(o.TypographyScales) == 0
}

// Blacklist and Whitelist select components by id, tag, or category prefix.
type Blacklist struct {
	Components []string `json:"components,omitempty" toml:"components"`
	Tags       []string `json:"tags,omitempty" toml:"tags"`
	Categories []string `json:"categories,omitempty" toml:"categories"`
}

type Whitelist struct {
	Components []string `json:"components,omitempty" toml:"components"`
	Tags       []string `json:"tags,omitempty" toml:"tags"`
}

// Preset is one loaded overlay definition.
type Preset struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	// Extends names a parent preset whose values apply first.
	Extends string   `json:"extends,omitempty"`
	Tags    []string `json:"tags,omitempty"`

	StyleOverrides     StyleOverrides    `json:"style_overrides"`
	VariantPreferences map[string]string `json:"variant_preferences,omitempty"`
	Blacklist          Blacklist         `json:"blacklist"`
	Whitelist          Whitelist         `json:"whitelist"`

	Source Source `json:"-"`
}

// Source records which layer a definition came from; shares semantics with
// the pattern store.
type Source int

const (
	SourceBuiltin Source = iota
	SourceUser
	SourceProject
)

func (s Source) String() string {
	switch s {
	case SourceUser:
		return "user"
	case SourceProject:
		return "project"
	default:
		return "built-in"
	}
}

type presetFile struct {
	Preset rawPreset `toml:"preset"`
}

type rawPreset struct {
	Name               string            `toml:"name"`
	Version            string            `toml:"version"`
	Author             string            `toml:"author"`
	Description        string            `toml:"description"`
	Extends            string            `toml:"extends"`
	Tags               []string          `toml:"tags"`
	StyleOverrides     rawOverrides      `toml:"style_overrides"`
	VariantPreferences map[string]string `toml:"variant_preferences"`
	Blacklist          Blacklist         `toml:"blacklist"`
	Whitelist          Whitelist         `toml:"whitelist"`
}

type rawOverrides struct {
	VisualWeightMin   *float64 `toml:"visual_weight_min"`
	VisualWeightMax   *float64 `toml:"visual_weight_max"`
	FormalityMin      *float64 `toml:"formality_min"`
	FormalityMax      *float64 `toml:"formality_max"`
	ColorIntensityMin *float64 `toml:"color_intensity_min"`
	ColorIntensityMax *float64 `toml:"color_intensity_max"`
	SpacingDensityMin *float64 `toml:"spacing_density_min"`
	SpacingDensityMax *float64 `toml:"spacing_density_max"`
	TypographyScales  []string `toml:"typography_scales"`
}

// Parse decodes and validates one preset definition.
func Parse(data []byte, source Source) (*Preset, error) {
	var file presetFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, apperr.Validationf("preset file does not parse: %v", err)
	}
	r := file.Preset
	if r.Name == "" {
		return nil, apperr.Validationf("preset is missing a name")
	}

	p := &Preset{
		Name:               r.Name,
		Version:            r.Version,
		Author:             r.Author,
		Description:        r.Description,
		Extends:            r.Extends,
		Tags:               r.Tags,
		VariantPreferences: r.VariantPreferences,
		Blacklist:          r.Blacklist,
		Whitelist:          r.Whitelist,
		Source:             source,
	}
	p.StyleOverrides = StyleOverrides{
		VisualWeightMin:   r.StyleOverrides.VisualWeightMin,
		VisualWeightMax:   r.StyleOverrides.VisualWeightMax,
		FormalityMin:      r.StyleOverrides.FormalityMin,
		FormalityMax:      r.StyleOverrides.FormalityMax,
		ColorIntensityMin: r.StyleOverrides.ColorIntensityMin,
		ColorIntensityMax: r.StyleOverrides.ColorIntensityMax,
		SpacingDensityMin: r.StyleOverrides.SpacingDensityMin,
		SpacingDensityMax: r.StyleOverrides.SpacingDensityMax,
	}
	for _, s := range r.StyleOverrides.TypographyScales {
		scale, ok := style.ParseTypographyScale(s)
		if !ok {
			return nil, apperr.Validationf("preset %q: unknown typography scale %q", r.Name, s)
		}
		p.StyleOverrides.TypographyScales = append(p.StyleOverrides.TypographyScales, scale)
	}

	return p, nil
}
