package analyzer

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/logging"
	"draftkit/internal/pattern"
	"draftkit/internal/style"
)

// SectionAnalysis captures one section component from a template kit.
type SectionAnalysis struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	SectionType pattern.SectionType `json:"section_type"`
	Style       style.Profile       `json:"style"`
	SourcePath  string              `json:"source_path"`
	SourceCode  string              `json:"-"`
}

// PageStructure is the ordered section sequence of one demo page.
type PageStructure struct {
	Name       string   `json:"name"`
	Sections   []string `json:"sections"`
	SourcePath string   `json:"source_path"`
}

// TemplateAnalysis is the result of analyzing one template kit.
type TemplateAnalysis struct {
	Name     string            `json:"name"`
	Path     string            `json:"path"`
	Sections []SectionAnalysis `json:"sections"`
	Pages    []PageStructure   `json:"pages"`
}

// TemplateAnalyzer walks template kits that ship a sections directory and
// demo pages assembled from those sections.
type TemplateAnalyzer struct {
	analyses map[string]*TemplateAnalysis
	jsxTagRe *regexp.Regexp
}

func NewTemplateAnalyzer() *TemplateAnalyzer {
	return &TemplateAnalyzer{
		analyses: make(map[string]*TemplateAnalysis),
		jsxTagRe: regexp.MustCompile(`<([A-Z][a-zA-Z]+)`),
	}
}

// AnalyzeTemplate analyzes one kit directory, returning a cached result on
// repeat calls for the same directory name.
func (a *TemplateAnalyzer) AnalyzeTemplate(path string) (*TemplateAnalysis, error) {
	name := filepath.Base(filepath.Clean(path))
	if name == "." || name == string(filepath.Separator) {
		return nil, apperr.InvalidInputf("template path %q has no usable name", path)
	}
	if cached, ok := a.analyses[name]; ok {
		return cached, nil
	}

	sectionsDir, err := findSectionsDir(path)
	if err != nil {
		return nil, err
	}
	sections, err := a.analyzeSections(sectionsDir)
	if err != nil {
		return nil, err
	}

	var pages []PageStructure
	if pagesDir, ok := findPagesDir(path); ok {
		pages, err = a.analyzePages(pagesDir, sections)
		if err != nil {
			return nil, err
		}
	}

	analysis := &TemplateAnalysis{Name: name, Path: path, Sections: sections, Pages: pages}
	a.analyses[name] = analysis
	return analysis, nil
}

// Analyses returns every cached analysis, sorted by template name.
func (a *TemplateAnalyzer) Analyses() []*TemplateAnalysis {
	out := make([]*TemplateAnalysis, 0, len(a.analyses))
	for _, an := range a.analyses {
		out = append(out, an)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func findSectionsDir(root string) (string, error) {
	candidates := []string{
		filepath.Join(root, "demo", "src", "components", "sections"),
		filepath.Join(root, "src", "components", "sections"),
		filepath.Join(root, "components", "sections"),
		filepath.Join(root, "app", "components", "sections"),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c, nil
		}
	}
	return "", apperr.NotFoundf("no sections directory under %s", root)
}

func findPagesDir(root string) (string, bool) {
	candidates := []string{
		filepath.Join(root, "demo", "src", "app"),
		filepath.Join(root, "src", "app"),
		filepath.Join(root, "app"),
		filepath.Join(root, "demo", "src", "pages"),
		filepath.Join(root, "src", "pages"),
		filepath.Join(root, "pages"),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c, true
		}
	}
	return "", false
}

func (a *TemplateAnalyzer) analyzeSections(dir string) ([]SectionAnalysis, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperr.Transientf("reading sections directory: %v", err)
	}

	var sections []SectionAnalysis
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tsx" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		section, ok, err := analyzeSectionFile(path)
		if err != nil {
			logging.Warn("Skipping unreadable section file", "path", path, "error", err)
			continue
		}
		if ok {
			sections = append(sections, section)
		}
	}
	return sections, nil
}

func analyzeSectionFile(path string) (SectionAnalysis, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SectionAnalysis{}, false, err
	}
	code := string(data)

	// Index-export shims are too small to carry any styling signal.
	if len(code) < 100 {
		return SectionAnalysis{}, false, nil
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	id := strings.ReplaceAll(strings.ToLower(stem), "_", "-")
	if id == "index" {
		return SectionAnalysis{}, false, nil
	}

	return SectionAnalysis{
		ID:          id,
		Name:        titleFromID(id),
		SectionType: sectionTypeFromName(id),
		Style:       style.Extract(code),
		SourcePath:  path,
		SourceCode:  code,
	}, true, nil
}

// sectionTypeFromName infers the abstract section role from keywords in a
// section file name.
func sectionTypeFromName(name string) pattern.SectionType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "hero"):
		return pattern.SectionHero
	case strings.Contains(lower, "feature"):
		return pattern.SectionFeatures
	case strings.Contains(lower, "pricing"):
		return pattern.SectionPricing
	case strings.Contains(lower, "testimonial"):
		return pattern.SectionTestimonial
	case strings.Contains(lower, "faq"):
		return pattern.SectionFAQ
	case strings.Contains(lower, "cta"), strings.Contains(lower, "call-to-action"):
		return pattern.SectionCTA
	case strings.Contains(lower, "footer"):
		return pattern.SectionFooter
	case strings.Contains(lower, "header"), strings.Contains(lower, "nav"):
		return pattern.SectionHeader
	case strings.Contains(lower, "logo"), strings.Contains(lower, "brand"), strings.Contains(lower, "stat"):
		return pattern.SectionSocialProof
	case strings.Contains(lower, "contact"), strings.Contains(lower, "newsletter"), strings.Contains(lower, "form"):
		return pattern.SectionForm
	case strings.Contains(lower, "content"), strings.Contains(lower, "article"), strings.Contains(lower, "document"):
		return pattern.SectionContent
	default:
		return pattern.SectionOther
	}
}

func (a *TemplateAnalyzer) analyzePages(dir string, sections []SectionAnalysis) ([]PageStructure, error) {
	// Demo pages reference sections by their PascalCase export name.
	nameToID := make(map[string]string, len(sections))
	for _, s := range sections {
		nameToID[pascalFromID(s.ID)] = s.ID
	}

	var pages []PageStructure
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || d.Name() != "page.tsx" {
			return err
		}
		page, ok, perr := a.analyzeDemoPage(path, nameToID)
		if perr != nil {
			logging.Warn("Skipping unreadable page file", "path", path, "error", perr)
			return nil
		}
		if ok {
			pages = append(pages, page)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Transientf("walking pages directory: %v", err)
	}
	return pages, nil
}

func (a *TemplateAnalyzer) analyzeDemoPage(path string, nameToID map[string]string) (PageStructure, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PageStructure{}, false, err
	}
	code := string(data)

	name := filepath.Base(filepath.Dir(path))
	if name == "app" || name == "pages" || name == "." {
		name = "home"
	}

	var order []string
	seen := make(map[string]bool)
	for _, m := range a.jsxTagRe.FindAllStringSubmatch(code, -1) {
		if id, ok := nameToID[m[1]]; ok && !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	if len(order) == 0 {
		return PageStructure{}, false, nil
	}

	return PageStructure{Name: name, Sections: order, SourcePath: path}, true, nil
}

func titleFromID(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func pascalFromID(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, "")
}
