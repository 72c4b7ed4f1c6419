package pattern

import (
	"draftkit/internal/apperr"
	"draftkit/internal/coherence"

	"github.com/BurntSushi/toml"
)

// patternFile mirrors the on-disk TOML shape. Optional scalars are pointers
// so that absent keys can take their documented defaults.
type patternFile struct {
	Pattern rawPattern `toml:"pattern"`
}

type rawPattern struct {
	ID               string          `toml:"id"`
	Name             string          `toml:"name"`
	Description      string          `toml:"description"`
	Tags             []string        `toml:"tags"`
	Dependencies     []string        `toml:"dependencies"`
	Sections         []rawSection    `toml:"sections"`
	StyleConstraints *rawConstraints `toml:"style_constraints"`
}

type rawSection struct {
	Type     string       `toml:"type"`
	Required bool         `toml:"required"`
	Position int          `toml:"position"`
	Count    *rawCount    `toml:"count"`
	Variants []rawVariant `toml:"variants"`
	Slots    []rawSlot    `toml:"slots"`
}

type rawCount struct {
	Min *int `toml:"min"`
	Max *int `toml:"max"`
}

type rawVariant struct {
	ID          string   `toml:"id"`
	Weight      *float64 `toml:"weight"`
	Recommended bool     `toml:"recommended"`
}

type rawSlot struct {
	Name     string   `toml:"name"`
	Type     string   `toml:"type"`
	Required bool     `toml:"required"`
	Default  string   `toml:"default"`
	Example  string   `toml:"example"`
	Min      *float64 `toml:"min"`
	Max      *float64 `toml:"max"`
	Values   []string `toml:"values"`
	Schema   string   `toml:"schema"`
}

type rawConstraints struct {
	MaxWeightVariance   *float64  `toml:"max_weight_variance"`
	MaxSpacingVariance  *float64  `toml:"max_spacing_variance"`
	FormalityRange      []float64 `toml:"formality_range"`
	ColorIntensityRange []float64 `toml:"color_intensity_range"`
}

// Parse decodes and validates one pattern definition.
func Parse(data []byte, source Source) (*Pattern, error) {
	var file patternFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, apperr.Validationf("pattern file does not parse: %v", err)
	}
	return file.Pattern.normalize(source)
}

func (r *rawPattern) normalize(source Source) (*Pattern, error) {
	if r.ID == "" {
		return nil, apperr.Validationf("pattern is missing an id")
	}
	if len(r.Sections) == 0 {
		return nil, apperr.Validationf("pattern %q has no sections", r.ID)
	}

	p := &Pattern{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		Tags:             r.Tags,
		Dependencies:     r.Dependencies,
		StyleConstraints: r.StyleConstraints.normalize(),
		Source:           source,
	}

	for _, rs := range r.Sections {
		sectionType, err := ParseSectionType(rs.Type)
		if err != nil {
			return nil, apperr.Validationf("pattern %q: %v", r.ID, err)
		}
		if len(rs.Variants) == 0 {
			return nil, apperr.Validationf("pattern %q: section %q has no variants", r.ID, rs.Type)
		}

		section := SectionSpec{
			Type:     sectionType,
			Required: rs.Required,
			Position: rs.Position,
			Count:    CountRange{Min: 1, Max: 1},
		}
		if rs.Count != nil {
			if rs.Count.Min != nil {
				section.Count.Min = *rs.Count.Min
			}
			if rs.Count.Max != nil {
				section.Count.Max = *rs.Count.Max
			}
		}

		for _, rv := range rs.Variants {
			if rv.ID == "" {
				return nil, apperr.Validationf("pattern %q: section %q has a variant without an id", r.ID, rs.Type)
			}
			weight := 0.5
			if rv.Weight != nil {
				weight = *rv.Weight
			}
			section.Variants = append(section.Variants, VariantSpec{
				ID:          rv.ID,
				Weight:      weight,
				Recommended: rv.Recommended,
			})
		}

		for _, slot := range rs.Slots {
			slotType, err := ParseSlotType(slot.Type)
			if err != nil {
				return nil, apperr.Validationf("pattern %q: slot %q: %v", r.ID, slot.Name, err)
			}
			section.Slots = append(section.Slots, SlotSpec{
				Name:     slot.Name,
				Type:     slotType,
				Required: slot.Required,
				Default:  slot.Default,
				Example:  slot.Example,
				Min:      slot.Min,
				Max:      slot.Max,
				Values:   slot.Values,
				Schema:   slot.Schema,
			})
		}

		p.Sections = append(p.Sections, section)
	}

	return p, nil
}

func (r *rawConstraints) normalize() coherence.Constraints {
	c := coherence.DefaultConstraints()
	if r == nil {
		return c
	}
	if r.MaxWeightVariance != nil {
		c.VisualWeightVariance = *r.MaxWeightVariance
	}
	if r.MaxSpacingVariance != nil {
		c.SpacingDensityVariance = *r.MaxSpacingVariance
	}
	if len(r.FormalityRange) == 2 {
		c.FormalityRange = [2]float64{r.FormalityRange[0], r.FormalityRange[1]}
	}
	if len(r.ColorIntensityRange) == 2 {
		c.ColorIntensityRange = [2]float64{r.ColorIntensityRange[0], r.ColorIntensityRange[1]}
	}
	return c
}
