// Package elements serves documentation for the Elements web-component
// library, parsed out of the vendor's llms.txt file.
package elements

import (
	"os"
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/config"
)

// Info is the static metadata for one Elements web component.
type Info struct {
	Name        string   `json:"name"`
	Tag         string   `json:"tag"`
	Description string   `json:"description"`
	UseCases    []string `json:"use_cases"`
}

// Elements is the fixed component roster.
var Elements = []Info{
	{"Autocomplete", "<el-autocomplete>", "Text input with filtered suggestions, like a styled <datalist>", []string{"search inputs", "form fields with suggestions", "comboboxes"}},
	{"Command Palette", "<el-command-palette>", "Keyboard-friendly Cmd+K style command menu", []string{"app navigation", "quick actions", "search interfaces"}},
	{"Copy Button", "<el-copy>", "Button that copies text to clipboard with feedback", []string{"code snippets", "share links", "API keys"}},
	{"Dialog", "<el-dialog>", "Modal dialog with backdrop, scroll lock, and transitions", []string{"confirmations", "forms", "detail views", "alerts"}},
	{"Disclosure", "<el-disclosure>", "Expandable/collapsible content sections", []string{"accordions", "FAQs", "expandable details"}},
	{"Dropdown Menu", "<el-dropdown>", "Dropdown menu with keyboard navigation", []string{"action menus", "option selectors", "context menus"}},
	{"Popover", "<el-popover>", "Floating panel anchored to a trigger element", []string{"tooltips", "flyouts", "info panels", "settings"}},
	{"Select", "<el-select>", "Styled replacement for native select dropdowns", []string{"form selects", "option pickers", "filters"}},
	{"Tabs", "<el-tab-group>", "Accessible tabbed interface with keyboard navigation", []string{"content sections", "settings panels", "dashboards"}},
}

// sectionHeaders maps normalized component ids to their "## " headings in
// llms.txt.
var sectionHeaders = map[string]string{
	"autocomplete":    "## Autocomplete",
	"command-palette": "## Command palette",
	"copy-button":     "## Copy button",
	"dialog":          "## Dialog",
	"disclosure":      "## Disclosure",
	"dropdown-menu":   "## Dropdown menu",
	"popover":         "## Popover",
	"select":          "## Select",
	"tabs":            "## Tabs",
}

// Store lazily loads the llms.txt document from the runtime data dir.
type Store struct {
	paths config.DataPaths

	doc    string
	loaded bool
}

func NewStore(paths config.DataPaths) *Store {
	return &Store{paths: paths}
}

func (s *Store) document() (string, error) {
	if s.loaded {
		return s.doc, nil
	}
	data, err := os.ReadFile(s.paths.ElementsFile())
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperr.NotFoundf("elements documentation is not downloaded; run draftkit cache sync")
		}
		return "", apperr.Transientf("reading elements documentation: %v", err)
	}
	s.doc = string(data)
	s.loaded = true
	return s.doc, nil
}

// Overview returns the introduction preceding the first component section.
func (s *Store) Overview() (string, error) {
	doc, err := s.document()
	if err != nil {
		return "", err
	}
	if pos := strings.Index(doc, "\n## Autocomplete"); pos >= 0 {
		return doc[:pos], nil
	}
	return doc, nil
}

// FullDocs returns the entire document.
func (s *Store) FullDocs() (string, error) {
	return s.document()
}

// GetDocs extracts the documentation section for one component. The name
// is forgiving: "dialog", "el-dialog", and "<el-dialog>" all resolve.
func (s *Store) GetDocs(name string) (string, error) {
	id, ok := NormalizeName(name)
	if !ok {
		return "", apperr.NotFoundf("unknown element %q", name)
	}

	doc, err := s.document()
	if err != nil {
		return "", err
	}

	header := sectionHeaders[id]
	start := strings.Index(doc, header)
	if start < 0 {
		return "", apperr.NotFoundf("no documentation section for %q", name)
	}

	rest := doc[start+len(header):]
	if end := strings.Index(rest, "\n## "); end >= 0 {
		return doc[start : start+len(header)+end], nil
	}
	return doc[start:], nil
}

// NormalizeName resolves the many ways an element gets named: with or
// without angle brackets, with or without the el- prefix, and with
// missing or swapped hyphens.
func NormalizeName(name string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	lower = strings.TrimPrefix(lower, "<")
	lower = strings.TrimSuffix(lower, ">")
	lower = strings.TrimPrefix(lower, "el-")
	lower = strings.NewReplacer("_", "-", " ", "-").Replace(lower)

	squashed := strings.ReplaceAll(lower, "-", "")
	for id := range sectionHeaders {
		if id == lower || strings.ReplaceAll(id, "-", "") == squashed {
			return id, true
		}
	}
	return "", false
}
