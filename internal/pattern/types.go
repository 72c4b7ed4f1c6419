// Package pattern loads page archetypes from layered TOML definitions:
// built-ins embedded in the binary, user-scope files under the config dir,
// and project-scope files under ./.draftkit/patterns. Later layers override
// earlier ones by id.
package pattern

import (
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/coherence"
)

// SectionType is the abstract role a section plays on a page.
type SectionType string

const (
	SectionHeader      SectionType = "header"
	SectionHero        SectionType = "hero"
	SectionFeatures    SectionType = "features"
	SectionSocialProof SectionType = "social-proof"
	SectionPricing     SectionType = "pricing"
	SectionTestimonial SectionType = "testimonial"
	SectionFAQ         SectionType = "faq"
	SectionCTA         SectionType = "cta"
	SectionFooter      SectionType = "footer"
	SectionForm        SectionType = "form"
	SectionContent     SectionType = "content"
	SectionOther       SectionType = "other"
)

// ParseSectionType accepts canonical names plus the common plural and
// synonym spellings that appear in vendor data.
func ParseSectionType(s string) (SectionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "header", "navbar":
		return SectionHeader, nil
	case "hero":
		return SectionHero, nil
	case "features", "feature":
		return SectionFeatures, nil
	case "social-proof", "logos", "logo-cloud", "brands":
		return SectionSocialProof, nil
	case "pricing":
		return SectionPricing, nil
	case "testimonial", "testimonials":
		return SectionTestimonial, nil
	case "faq", "faqs":
		return SectionFAQ, nil
	case "cta":
		return SectionCTA, nil
	case "footer":
		return SectionFooter, nil
	case "form", "contact":
		return SectionForm, nil
	case "content":
		return SectionContent, nil
	case "other":
		return SectionOther, nil
	default:
		return "", apperr.InvalidInputf("unknown section type %q", s)
	}
}

func (s SectionType) String() string { return string(s) }

// SlotType is the closed set of slot value kinds.
type SlotType string

const (
	SlotString  SlotType = "string"
	SlotInteger SlotType = "integer"
	SlotBoolean SlotType = "boolean"
	SlotImage   SlotType = "image"
	SlotArray   SlotType = "array"
	SlotEnum    SlotType = "enum"
)

func ParseSlotType(s string) (SlotType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string":
		return SlotString, nil
	case "integer", "int":
		return SlotInteger, nil
	case "boolean", "bool":
		return SlotBoolean, nil
	case "image":
		return SlotImage, nil
	case "array":
		return SlotArray, nil
	case "enum":
		return SlotEnum, nil
	default:
		return "", apperr.InvalidInputf("unknown slot type %q", s)
	}
}

// SlotSpec describes one named content placeholder in a section.
type SlotSpec struct {
	Name     string   `json:"name"`
	Type     SlotType `json:"type"`
	Required bool     `json:"required,omitempty"`
	Default  string   `json:"default,omitempty"`
	Example  string   `json:"example,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Values   []string `json:"values,omitempty"`
	Schema   string   `json:"schema,omitempty"`
}

// VariantSpec names a concrete component that can realize a section.
type VariantSpec struct {
	ID          string  `json:"id"`
	Weight      float64 `json:"weight"`
	Recommended bool    `json:"recommended,omitempty"`
}

// CountRange bounds section repetition. The default is exactly one.
type CountRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SectionSpec is one ordered slot in a pattern.
type SectionSpec struct {
	Type     SectionType   `json:"type"`
	Required bool          `json:"required"`
	Position int           `json:"position"`
	Count    CountRange    `json:"count"`
	Variants []VariantSpec `json:"variants"`
	Slots    []SlotSpec    `json:"slots,omitempty"`
}

// RecommendedVariant returns the section's recommended variant, if any.
func (s *SectionSpec) RecommendedVariant() (VariantSpec, bool) {
	for _, v := range s.Variants {
		if v.Recommended {
			return v, true
		}
	}
	return VariantSpec{}, false
}

// Pattern is a declarative page archetype.
type Pattern struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Description      string                `json:"description"`
	Tags             []string              `json:"tags,omitempty"`
	Sections         []SectionSpec         `json:"sections"`
	StyleConstraints coherence.Constraints `json:"style_constraints"`
	Dependencies     []string              `json:"dependencies,omitempty"`
	Source           Source                `json:"-"`
}

// Section returns the spec for a section type, if the pattern carries one.
func (p *Pattern) Section(t SectionType) (*SectionSpec, bool) {
	for i := range p.Sections {
		if p.Sections[i].Type == t {
			return &p.Sections[i], true
		}
	}
	return nil, false
}

// Source records which layer a definition came from.
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
