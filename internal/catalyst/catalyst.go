// Package catalyst exposes the Catalyst UI kit: atomic React components
// shipped in TypeScript and JavaScript flavors under the runtime data
// directory.
package catalyst

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/config"
)

// Language selects the kit flavor.
type Language string

const (
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
)

// ParseLanguage accepts the canonical names plus common abbreviations and
// file extensions.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(s) {
	case "typescript", "ts", "tsx", "":
		return TypeScript, nil
	case "javascript", "js", "jsx":
		return JavaScript, nil
	default:
		return "", apperr.InvalidInputf("unknown catalyst language %q (use typescript or javascript)", s)
	}
}

func (l Language) String() string { return string(l) }

func (l Language) Ext() string {
	if l == JavaScript {
		return "jsx"
	}
	return "tsx"
}

// Component is one Catalyst kit entry.
type Component struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Extension   string `json:"extension"`
}

var descriptions = map[string]string{
	"alert":            "Alert banners for displaying important messages with various severity levels",
	"auth-layout":      "Layout component for authentication pages (login, signup, etc.)",
	"avatar":           "User avatar with image, initials, or placeholder fallback",
	"badge":            "Small status indicators and labels",
	"button":           "Primary, secondary, and soft button variants with loading states",
	"checkbox":         "Checkbox input with label and description support",
	"combobox":         "Searchable select dropdown with keyboard navigation",
	"description-list": "Key-value pairs in a structured list format",
	"dialog":           "Modal dialog with backdrop and focus trapping",
	"divider":          "Horizontal or vertical separator lines",
	"dropdown":         "Menu dropdown with items, sections, and keyboard navigation",
	"fieldset":         "Form fieldset with legend and field grouping",
	"heading":          "Typography component for page and section headings",
	"input":            "Text input field with label, description, and error states",
	"link":             "Styled anchor links with hover and focus states",
	"listbox":          "Selection list with single or multiple selection",
	"navbar":           "Top navigation bar with responsive menu",
	"pagination":       "Page navigation with previous/next and page numbers",
	"radio":            "Radio button group for single selection",
	"select":           "Native select dropdown with custom styling",
	"sidebar":          "Vertical navigation sidebar with sections",
	"sidebar-layout":   "Layout with collapsible sidebar navigation",
	"stacked-layout":   "Full-width layout with header and content sections",
	"switch":           "Toggle switch for boolean settings",
	"table":            "Data table with sorting, pagination, and row actions",
	"text":             "Typography component for body text and paragraphs",
	"textarea":         "Multi-line text input with auto-resize option",
}

// Kit reads Catalyst components from the runtime data directory.
type Kit struct {
	paths config.DataPaths
}

func NewKit(paths config.DataPaths) *Kit {
	return &Kit{paths: paths}
}

// List enumerates components for a language. When the kit is downloaded
// the on-disk files are authoritative; otherwise the static registry is
// returned so callers can still discover what the kit offers.
func (k *Kit) List(language Language) []Component {
	dir := k.paths.CatalystDir(language.String())
	ext := "." + language.Ext()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return staticComponents(language)
	}

	var out []Component
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		out = append(out, Component{
			Name:        name,
			Description: describe(name),
			Extension:   language.Ext(),
		})
	}
	if len(out) == 0 {
		return staticComponents(language)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns the source code of one component.
func (k *Kit) Get(name string, language Language) (string, error) {
	path := filepath.Join(k.paths.CatalystDir(language.String()), name+"."+language.Ext())
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if _, known := descriptions[name]; known {
				return "", apperr.NotFoundf("catalyst component %q is not downloaded; run draftkit cache sync", name)
			}
			return "", apperr.NotFoundf("unknown catalyst component %q", name)
		}
		return "", apperr.Transientf("reading catalyst component: %v", err)
	}
	return string(data), nil
}

func describe(name string) string {
	if d, ok := descriptions[name]; ok {
		return d
	}
	return "Catalyst UI component"
}

func staticComponents(language Language) []Component {
	names := make([]string, 0, len(descriptions))
	for name := range descriptions {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Component, 0, len(names))
	for _, name := range names {
		out = append(out, Component{Name: name, Description: descriptions[name], Extension: language.Ext()})
	}
	return out
}
