package analyzer

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/logging"
	"draftkit/internal/style"
)

// ComponentUsage is one component referenced by a page.
type ComponentUsage struct {
	ID         string `json:"id"`
	ImportPath string `json:"import_path,omitempty"`
	Inline     bool   `json:"inline"`
}

// PageAnalysis describes a single routed page.
type PageAnalysis struct {
	Route        string           `json:"route"`
	PageType     PageType         `json:"page_type"`
	Components   []ComponentUsage `json:"components"`
	SourcePath   string           `json:"source_path"`
	TemplateName string           `json:"template_name"`
}

// ComponentAnalysis aggregates one component across pages and templates.
type ComponentAnalysis struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Templates  []string            `json:"templates,omitempty"`
	PageTypes  map[PageType]bool   `json:"-"`
	Style      style.Profile       `json:"style"`
	SourcePath string              `json:"source_path,omitempty"`
}

// LayoutAnalysis records the shared chrome a layout file contributes.
type LayoutAnalysis struct {
	ID               string   `json:"id"`
	SharedComponents []string `json:"shared_components,omitempty"`
	Routes           []string `json:"routes"`
	SourcePath       string   `json:"source_path"`
}

// TemplatePageAnalysis is the page-first view of one template project.
type TemplatePageAnalysis struct {
	Name       string                        `json:"name"`
	Path       string                        `json:"path"`
	Pages      []PageAnalysis                `json:"pages"`
	Components map[string]*ComponentAnalysis `json:"components"`
	Layouts    []LayoutAnalysis              `json:"layouts"`
	Strengths  []PageType                    `json:"strengths"`
}

// PageAnalyzer walks routed template projects page-first: it classifies
// each route, resolves the components the page pulls in, and records which
// page types each component serves.
type PageAnalyzer struct {
	analyses map[string]*TemplatePageAnalysis

	importRe    *regexp.Regexp
	jsxTagRe    *regexp.Regexp
	mdxLayoutRe *regexp.Regexp
	markdocRe   *regexp.Regexp
}

// reactBuiltins never count as template components.
var reactBuiltins = map[string]bool{
	"Fragment": true, "Suspense": true, "Image": true,
	"Link": true, "Head": true, "Script": true,
}

func NewPageAnalyzer() *PageAnalyzer {
	return &PageAnalyzer{
		analyses: make(map[string]*TemplatePageAnalysis),
		// Tolerates both bare and destructured import clauses.
		importRe:    regexp.MustCompile(`import\s+\{?\s*([^}]+?)\s*\}?\s+from\s+['"]([^'"]+)['"]`),
		jsxTagRe:    regexp.MustCompile(`<([A-Z][a-zA-Z0-9]*)`),
		mdxLayoutRe: regexp.MustCompile(`export\s+\{\s*(\w+)(?:\s+as\s+default)?\s*\}\s+from\s+['"]([^'"]+)['"]`),
		markdocRe:   regexp.MustCompile(`\{%\s*([a-zA-Z][a-zA-Z0-9-]*)\s`),
	}
}

// AnalyzeTemplate analyzes one template project directory. Results are
// cached by directory name.
func (a *PageAnalyzer) AnalyzeTemplate(path string) (*TemplatePageAnalysis, error) {
	name := filepath.Base(filepath.Clean(path))
	if name == "." || name == string(filepath.Separator) {
		return nil, apperr.InvalidInputf("template path %q has no usable name", path)
	}
	if cached, ok := a.analyses[name]; ok {
		return cached, nil
	}

	sourceRoot, err := findSourceRoot(path)
	if err != nil {
		return nil, err
	}

	analysis, err := a.analyze(name, path, sourceRoot)
	if err != nil {
		return nil, err
	}
	a.analyses[name] = analysis
	return analysis, nil
}

// Get returns a previously computed analysis by template name.
func (a *PageAnalyzer) Get(templateName string) (*TemplatePageAnalysis, bool) {
	an, ok := a.analyses[templateName]
	return an, ok
}

// Analyses returns every cached analysis, sorted by template name.
func (a *PageAnalyzer) Analyses() []*TemplatePageAnalysis {
	out := make([]*TemplatePageAnalysis, 0, len(a.analyses))
	for _, an := range a.analyses {
		out = append(out, an)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// findSourceRoot locates the project source tree, handling kits that nest
// their app under a language variant like <name>-ts or <name>-js.
func findSourceRoot(path string) (string, error) {
	if dirExists(filepath.Join(path, "src")) {
		return path, nil
	}

	name := filepath.Base(filepath.Clean(path))
	for _, suffix := range []string{"-ts", "-js"} {
		variant := filepath.Join(path, name+suffix)
		if dirExists(variant) {
			return variant, nil
		}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", apperr.Transientf("reading template directory: %v", err)
	}
	for _, entry := range entries {
		if entry.IsDir() && dirExists(filepath.Join(path, entry.Name(), "src")) {
			return filepath.Join(path, entry.Name()), nil
		}
	}
	return "", apperr.NotFoundf("no source directory under %s", path)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (a *PageAnalyzer) analyze(name, templatePath, sourceRoot string) (*TemplatePageAnalysis, error) {
	analysis := &TemplatePageAnalysis{
		Name:       name,
		Path:       templatePath,
		Components: make(map[string]*ComponentAnalysis),
	}

	appDir, hasApp := findAppDir(sourceRoot)
	if hasApp {
		if err := a.findPages(appDir, appDir, name, analysis); err != nil {
			return nil, err
		}
		if err := a.findLayouts(appDir, appDir, analysis); err != nil {
			return nil, err
		}
	}

	componentsDir := filepath.Join(sourceRoot, "src", "components")
	if dirExists(componentsDir) {
		if err := a.scanComponentDir(componentsDir, name, analysis); err != nil {
			return nil, err
		}
	}

	analysis.Strengths = templateStrengths(analysis.Pages)
	return analysis, nil
}

func findAppDir(sourceRoot string) (string, bool) {
	for _, c := range []string{filepath.Join(sourceRoot, "src", "app"), filepath.Join(sourceRoot, "app")} {
		if dirExists(c) {
			return c, true
		}
	}
	return "", false
}

// templateStrengths ranks the page types a template covers best, top 3 by
// page count.
func templateStrengths(pages []PageAnalysis) []PageType {
	counts := make(map[PageType]int)
	for _, p := range pages {
		counts[p.PageType]++
	}
	delete(counts, PageUnknown)

	types := make([]PageType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})
	if len(types) > 3 {
		types = types[:3]
	}
	return types
}

func (a *PageAnalyzer) findPages(dir, appRoot, templateName string, analysis *TemplatePageAnalysis) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return apperr.Transientf("reading app directory: %v", err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), "_") || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if err := a.findPages(path, appRoot, templateName, analysis); err != nil {
				return err
			}
			continue
		}

		var page *PageAnalysis
		var perr error
		switch entry.Name() {
		case "page.tsx", "page.jsx", "page.js":
			page, perr = a.analyzePageFile(path, appRoot, templateName, analysis)
		case "page.mdx":
			page, perr = a.analyzeMDXPage(path, appRoot, templateName, analysis)
		case "page.md":
			page, perr = a.analyzeMarkdocPage(path, appRoot, templateName, analysis)
		default:
			continue
		}
		if perr != nil {
			logging.Warn("Skipping unreadable page file", "path", path, "error", perr)
			continue
		}
		if page != nil {
			analysis.Pages = append(analysis.Pages, *page)
		}
	}
	return nil
}

func routeFromPath(path, appRoot string) string {
	rel, err := filepath.Rel(appRoot, filepath.Dir(path))
	if err != nil || rel == "." {
		return "/"
	}
	route := "/" + filepath.ToSlash(rel)
	if route == "/app" {
		return "/"
	}
	return route
}

func (a *PageAnalyzer) analyzePageFile(path, appRoot, templateName string, analysis *TemplatePageAnalysis) (*PageAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	code := string(data)

	route := routeFromPath(path, appRoot)
	pageType := ClassifyRoute(route)

	seen := make(map[string]bool)
	var usages []ComponentUsage

	a.collectImports(code, pageType, seen, &usages, analysis)

	// Anything rendered but not imported must be defined in the file.
	for _, m := range a.jsxTagRe.FindAllStringSubmatch(code, -1) {
		componentName := m[1]
		id := strings.ToLower(componentName)
		if seen[id] || reactBuiltins[componentName] {
			continue
		}
		inline := strings.Contains(code, "function "+componentName+"(") ||
			strings.Contains(code, "const "+componentName+" =")
		if inline && !seen[id] {
			seen[id] = true
			usages = append(usages, ComponentUsage{ID: id, Inline: true})
		}
	}

	if len(usages) == 0 {
		return nil, nil
	}
	return &PageAnalysis{
		Route:        route,
		PageType:     pageType,
		Components:   usages,
		SourcePath:   path,
		TemplateName: templateName,
	}, nil
}

// collectImports records component imports from @/components and relative
// paths, resolving "X as Y" clauses to the exported name.
func (a *PageAnalyzer) collectImports(code string, pageType PageType, seen map[string]bool, usages *[]ComponentUsage, analysis *TemplatePageAnalysis) {
	for _, m := range a.importRe.FindAllStringSubmatch(code, -1) {
		importClause, importPath := m[1], m[2]
		if !strings.HasPrefix(importPath, "@/components") &&
			!strings.HasPrefix(importPath, "./") &&
			!strings.HasPrefix(importPath, "../") {
			continue
		}
		for _, clause := range strings.Split(importClause, ",") {
			componentName, _, _ := strings.Cut(strings.TrimSpace(clause), " as ")
			componentName = strings.TrimSpace(componentName)
			if componentName == "" || componentName[0] < 'A' || componentName[0] > 'Z' {
				continue
			}
			id := deriveComponentID(componentName, importPath)
			if seen[id] {
				continue
			}
			seen[id] = true
			*usages = append(*usages, ComponentUsage{ID: id, ImportPath: importPath})
			analysis.trackComponent(id, componentName, pageType)
		}
	}
}

func (a *PageAnalyzer) analyzeMDXPage(path, appRoot, templateName string, analysis *TemplatePageAnalysis) (*PageAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	code := string(data)

	route := routeFromPath(path, appRoot)
	pageType := a.inferMDXPageType(code, route)

	seen := make(map[string]bool)
	var usages []ComponentUsage

	// Imports and layout re-exports both live above the frontmatter rule.
	header, _, _ := strings.Cut(code, "---")

	a.collectImports(header, pageType, seen, &usages, analysis)

	for _, m := range a.mdxLayoutRe.FindAllStringSubmatch(header, -1) {
		componentName, importPath := m[1], m[2]
		id := deriveComponentID(componentName, importPath)
		if seen[id] {
			continue
		}
		seen[id] = true
		usages = append(usages, ComponentUsage{ID: id, ImportPath: importPath})
		analysis.trackComponent(id, componentName, pageType)
	}

	// JSX-case tags in the content arrive through the MDX provider.
	for _, m := range a.jsxTagRe.FindAllStringSubmatch(code, -1) {
		componentName := m[1]
		id := strings.ToLower(componentName)
		if seen[id] || reactBuiltins[componentName] {
			continue
		}
		seen[id] = true
		usages = append(usages, ComponentUsage{ID: id, Inline: true})
	}

	if len(usages) == 0 {
		return nil, nil
	}
	return &PageAnalysis{
		Route:        route,
		PageType:     pageType,
		Components:   usages,
		SourcePath:   path,
		TemplateName: templateName,
	}, nil
}

// inferMDXPageType prefers content signals over the route; MDX front
// matter and prose are usually more descriptive than the path.
func (a *PageAnalyzer) inferMDXPageType(content, route string) PageType {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "changelog"), strings.Contains(lower, "what's new"):
		return PageChangelog
	case strings.Contains(lower, "api reference"), strings.Contains(lower, "api documentation"), strings.Contains(lower, "endpoint"):
		return PageAPIReference
	case strings.Contains(lower, "getting started"), strings.Contains(lower, "installation"), strings.Contains(lower, "quickstart"):
		return PageDocs
	case strings.Contains(lower, "blog post"), strings.Contains(lower, "article"), strings.Contains(lower, "published"), strings.Contains(content, "{{ date:"):
		return PageBlog
	case strings.Contains(lower, "privacy policy"), strings.Contains(lower, "terms of service"), strings.Contains(lower, "legal"):
		return PageLegal
	}
	return ClassifyRoute(route)
}

func (a *PageAnalyzer) analyzeMarkdocPage(path, appRoot, templateName string, analysis *TemplatePageAnalysis) (*PageAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	code := string(data)

	route := routeFromPath(path, appRoot)
	pageType := a.inferMarkdocPageType(code, route)

	seen := make(map[string]bool)
	var usages []ComponentUsage

	for _, m := range a.markdocRe.FindAllStringSubmatch(code, -1) {
		tag := m[1]
		if strings.HasPrefix(tag, "/") || tag == "" {
			continue
		}
		id := strings.ToLower(tag)
		if seen[id] {
			continue
		}
		seen[id] = true
		usages = append(usages, ComponentUsage{ID: id})
		analysis.trackComponent(id, pascalFromID(id), pageType)
	}

	// Pages with no explicit tags still render through the shared layout.
	if len(usages) == 0 {
		usages = append(usages, ComponentUsage{ID: "docs-layout"})
		analysis.trackComponent("docs-layout", "Docs Layout", pageType)
	}

	return &PageAnalysis{
		Route:        route,
		PageType:     pageType,
		Components:   usages,
		SourcePath:   path,
		TemplateName: templateName,
	}, nil
}

func (a *PageAnalyzer) inferMarkdocPageType(content, route string) PageType {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "installation"), strings.Contains(lower, "getting started"), strings.Contains(lower, "quickstart"):
		return PageDocs
	case strings.Contains(lower, "api reference"), strings.Contains(lower, "method:"), strings.Contains(lower, "endpoint"):
		return PageAPIReference
	case strings.Contains(lower, "architecture"), strings.Contains(lower, "guide"), strings.Contains(lower, "tutorial"):
		return PageDocs
	case strings.Contains(lower, "changelog"), strings.Contains(lower, "release notes"):
		return PageChangelog
	case strings.Contains(route, "/docs"):
		return PageDocs
	}
	return ClassifyRoute(route)
}

// deriveComponentID picks the id a component is known by: the file name
// for section imports, otherwise the kebab-cased export name.
func deriveComponentID(name, importPath string) string {
	if strings.Contains(importPath, "/sections/") {
		if idx := strings.LastIndex(importPath, "/"); idx >= 0 {
			return importPath[idx+1:]
		}
	}
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (t *TemplatePageAnalysis) trackComponent(id, name string, pageType PageType) {
	comp, ok := t.Components[id]
	if !ok {
		comp = &ComponentAnalysis{ID: id, Name: name, PageTypes: make(map[PageType]bool)}
		t.Components[id] = comp
	}
	comp.PageTypes[pageType] = true
}

var sharedChrome = []string{"Header", "Footer", "Nav", "Navbar", "Navigation", "Sidebar"}

func (a *PageAnalyzer) findLayouts(dir, appRoot string, analysis *TemplatePageAnalysis) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return apperr.Transientf("reading app directory: %v", err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := a.findLayouts(path, appRoot, analysis); err != nil {
				return err
			}
			continue
		}
		if entry.Name() != "layout.tsx" && entry.Name() != "layout.jsx" {
			continue
		}
		layout, lerr := a.analyzeLayoutFile(path, appRoot)
		if lerr != nil {
			logging.Warn("Skipping unreadable layout file", "path", path, "error", lerr)
			continue
		}
		analysis.Layouts = append(analysis.Layouts, layout)
	}
	return nil
}

func (a *PageAnalyzer) analyzeLayoutFile(path, appRoot string) (LayoutAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutAnalysis{}, err
	}
	code := string(data)

	rel, err := filepath.Rel(appRoot, filepath.Dir(path))
	if err != nil || rel == "." {
		rel = ""
	}
	route := filepath.ToSlash(rel)

	id := "root"
	if route != "" {
		id = strings.ReplaceAll(route, "/", "-")
	}

	var shared []string
	for _, m := range a.jsxTagRe.FindAllStringSubmatch(code, -1) {
		name := m[1]
		for _, p := range sharedChrome {
			if strings.Contains(name, p) {
				shared = append(shared, name)
				break
			}
		}
	}

	return LayoutAnalysis{ID: id, SharedComponents: shared, Routes: []string{route}, SourcePath: path}, nil
}

func (a *PageAnalyzer) scanComponentDir(dir, templateName string, analysis *TemplatePageAnalysis) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return apperr.Transientf("walking components directory: %v", err)
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".tsx" && ext != ".jsx" {
			return nil
		}

		data, rerr := os.ReadFile(path)
		if rerr != nil {
			logging.Warn("Skipping unreadable component file", "path", path, "error", rerr)
			return nil
		}
		code := string(data)
		if len(code) < 100 {
			return nil
		}

		stem := strings.TrimSuffix(filepath.Base(path), ext)
		id := strings.ReplaceAll(strings.ToLower(stem), "_", "-")
		if id == "index" {
			return nil
		}

		profile := style.Extract(code)
		comp, ok := analysis.Components[id]
		if !ok {
			comp = &ComponentAnalysis{ID: id, Name: titleFromID(id), PageTypes: make(map[PageType]bool)}
			analysis.Components[id] = comp
		}
		comp.Style = profile
		comp.SourcePath = path
		if !contains(comp.Templates, templateName) {
			comp.Templates = append(comp.Templates, templateName)
		}
		return nil
	})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
