// Package catalog holds the frozen component metadata store. Corpora are
// line-delimited JSON, one file per framework, loaded once at startup and
// immutable afterwards.
package catalog

import (
	"strings"

	"draftkit/internal/apperr"
)

// Framework selects a corpus file.
type Framework string

const (
	FrameworkHTML  Framework = "html"
	FrameworkReact Framework = "react"
	FrameworkVue   Framework = "vue"
)

// Frameworks lists every supported framework in corpus order.
var Frameworks = []Framework{FrameworkReact, FrameworkVue, FrameworkHTML}

// ParseFramework accepts the canonical names case-insensitively.
func ParseFramework(s string) (Framework, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html":
		return FrameworkHTML, nil
	case "react":
		return FrameworkReact, nil
	case "vue":
		return FrameworkVue, nil
	default:
		return "", apperr.InvalidInputf("unknown framework %q (expected html, react, or vue)", s)
	}
}

// Ext returns the source-file extension used for cached snippets.
func (f Framework) Ext() string {
	switch f {
	case FrameworkReact:
		return "jsx"
	case FrameworkVue:
		return "vue"
	default:
		return "html"
	}
}

func (f Framework) String() string { return string(f) }

// Mode is a component theme mode and a dimension of the cache key.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
	ModeNone   Mode = "none"
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ModeLight, nil
	case "dark":
		return ModeDark, nil
	case "system":
		return ModeSystem, nil
	case "none":
		return ModeNone, nil
	default:
		return "", apperr.InvalidInputf("unknown mode %q (expected light, dark, system, or none)", s)
	}
}

func (m Mode) String() string { return string(m) }

// TailwindVersion selects a docs corpus.
type TailwindVersion string

const (
	TailwindV3 TailwindVersion = "v3"
	TailwindV4 TailwindVersion = "v4"
)

func ParseTailwindVersion(s string) (TailwindVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "3", "v3":
		return TailwindV3, nil
	case "", "4", "v4":
		return TailwindV4, nil
	default:
		return "", apperr.InvalidInputf("unknown tailwind version %q (expected v3 or v4)", s)
	}
}

func (v TailwindVersion) String() string { return string(v) }

// ExtractedMeta carries optional per-component metadata mined from source.
type ExtractedMeta struct {
	Dependencies []string `json:"dependencies,omitempty"`
	Icons        []string `json:"icons,omitempty"`
	Tailwind     string   `json:"tailwind,omitempty"`
	Tokens       []string `json:"tokens,omitempty"`
}

// ComponentRecord is one catalog entry. Records are immutable once loaded
// and keyed uniquely by ID within a framework.
type ComponentRecord struct {
	ID             string          `json:"id"`
	UUID           string          `json:"uuid"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory"`
	SubSubcategory string          `json:"sub_subcategory"`
	Modes          []Mode          `json:"modes,omitempty"`
	Previews       map[Mode]string `json:"previews,omitempty"`
	Meta           *ExtractedMeta  `json:"meta,omitempty"`
}

// HasMode reports mode availability. The ecommerce sub-corpus records a
// single "none" mode; those components answer true for light as well. No
// other fallback exists.
func (c *ComponentRecord) HasMode(m Mode) bool {
	none := false
	for _, have := range c.Modes {
		if have == m {
			return true
		}
		if have == ModeNone {
			none = true
		}
	}
	return m == ModeLight && none
}

// PreviewURL returns the preview image URL for a mode. Querying ModeNone
// aliases the light preview when no dedicated entry exists.
func (c *ComponentRecord) PreviewURL(m Mode) (string, bool) {
	if url, ok := c.Previews[m]; ok {
		return url, true
	}
	if m == ModeNone {
		url, ok := c.Previews[ModeLight]
		return url, ok
	}
	return "", false
}

// matches implements the search predicate: case-insensitive substring over
// the display name and all three taxonomy levels.
func (c *ComponentRecord) matches(queryLower string) bool {
	if queryLower == "" {
		return true
	}
	haystack := strings.ToLower(c.Name + " " + c.Category + " " + c.Subcategory + " " + c.SubSubcategory)
	return strings.Contains(haystack, queryLower)
}
