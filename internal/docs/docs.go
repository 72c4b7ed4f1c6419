// Package docs serves Tailwind CSS reference documentation from the
// runtime data directory, keyed by topic and Tailwind version.
package docs

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"draftkit/internal/apperr"
	"draftkit/internal/catalog"
	"draftkit/internal/config"
)

// TopicInfo describes one documentation topic and the Tailwind versions
// it covers.
type TopicInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	V3          bool   `json:"v3"`
	V4          bool   `json:"v4"`
}

// Topics is the full topic registry. Most topics exist for both major
// versions; v4-changes only makes sense for v4.
var Topics = []TopicInfo{
	{"index", "Documentation index and quick reference", true, true},
	{"flexbox", "Flex container, direction, wrap, justify, align, grow, shrink, basis", true, true},
	{"grid", "Grid container, columns, rows, spans, auto-flow, gap, place utilities", true, true},
	{"position", "Static, relative, absolute, fixed, sticky, inset, z-index", true, true},
	{"display", "Block, inline, flex, grid, hidden, visibility, overflow", true, true},
	{"spacing", "Padding, margin, space-between, negative margins", true, true},
	{"sizing", "Width, height, min/max width/height, size utility", true, true},
	{"typography", "Font family, size, weight, line height, text alignment, decoration", true, true},
	{"colors", "Color palette, text color, background color, opacity modifiers", true, true},
	{"backgrounds", "Background color, image, gradients, size, position, repeat", true, true},
	{"borders", "Border width, color, style, radius, divide, outline, ring", true, true},
	{"effects", "Box shadow, shadow color, opacity, blend modes", true, true},
	{"filters", "Blur, brightness, contrast, grayscale, backdrop filters", true, true},
	{"transforms", "Scale, rotate, translate, skew, 3D transforms", true, true},
	{"transitions", "Transition property, duration, timing, animations", true, true},
	{"interactivity", "Cursor, pointer events, resize, scroll, user select", true, true},
	{"states", "Hover, focus, active, disabled, group, peer, has, not", true, true},
	{"responsive", "Breakpoints, mobile-first, container queries", true, true},
	{"dark-mode", "Dark mode setup, class strategy, color patterns", true, true},
	{"accessibility", "Screen reader, focus styles, motion preferences", true, true},
	{"svg", "Fill, stroke, stroke width, icon patterns", true, true},
	{"forms", "Form elements: input, checkbox, radio, select (@tailwindcss/forms plugin for v3)", true, true},
	{"prose", "Typography for rendered content (@tailwindcss/typography plugin)", true, true},
	{"v4-changes", "What's new in v4, migration from v3", false, true},
}

func (t TopicInfo) available(version catalog.TailwindVersion) bool {
	if version == catalog.TailwindV3 {
		return t.V3
	}
	return t.V4
}

// Store reads documentation files from the runtime data directory.
type Store struct {
	paths config.DataPaths
}

func NewStore(paths config.DataPaths) *Store {
	return &Store{paths: paths}
}

// Get returns the markdown body for a topic. Frontmatter, if present, is
// stripped. Unknown topics fail with near-miss suggestions so an agent can
// self-correct.
func (s *Store) Get(topic string, version catalog.TailwindVersion) (string, error) {
	info, ok := findTopic(topic)
	if !ok {
		if suggestions := suggestTopics(topic, version); len(suggestions) > 0 {
			return "", apperr.NotFoundf("unknown documentation topic %q. Did you mean: %s", topic, strings.Join(suggestions, ", "))
		}
		return "", apperr.NotFoundf("unknown documentation topic %q", topic)
	}
	if !info.available(version) {
		return "", apperr.InvalidInputf("topic %q is not available for Tailwind %s", topic, version)
	}

	path := filepath.Join(s.paths.DocsDir(version.String()), topic+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperr.NotFoundf("documentation for %q is not downloaded; run draftkit cache sync", topic)
		}
		return "", apperr.Transientf("reading documentation: %v", err)
	}

	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		// Not a frontmatter document; serve it as-is.
		return string(data), nil
	}
	return string(body), nil
}

// ListTopics lists the topics available for a version.
func ListTopics(version catalog.TailwindVersion) []TopicInfo {
	var out []TopicInfo
	for _, t := range Topics {
		if t.available(version) {
			out = append(out, t)
		}
	}
	return out
}

// SearchTopics filters topics by a case-insensitive keyword over name and
// description.
func SearchTopics(query string, version catalog.TailwindVersion) []TopicInfo {
	q := strings.ToLower(query)
	var out []TopicInfo
	for _, t := range Topics {
		if !t.available(version) {
			continue
		}
		if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

func findTopic(name string) (TopicInfo, bool) {
	for _, t := range Topics {
		if t.Name == name {
			return t, true
		}
	}
	return TopicInfo{}, false
}

// suggestTopics proposes near misses: topics sharing a prefix or
// containing the query.
func suggestTopics(query string, version catalog.TailwindVersion) []string {
	q := strings.ToLower(query)
	var out []string
	for _, t := range Topics {
		if !t.available(version) {
			continue
		}
		if strings.Contains(t.Name, q) || strings.Contains(q, t.Name) ||
			(len(q) >= 3 && strings.HasPrefix(t.Name, q[:3])) {
			out = append(out, t.Name)
		}
	}
	sort.Strings(out)
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}
