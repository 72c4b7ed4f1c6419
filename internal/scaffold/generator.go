package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/compose"
)

// GeneratedPage is a rendered page ready for writing.
type GeneratedPage struct {
	Name         string
	Path         string
	Content      string
	Dependencies []string
}

// GeneratePlaceholder renders the welcome page a fresh project starts with.
func GeneratePlaceholder(cfg ProjectConfig) GeneratedPage {
	var content string
	switch cfg.Framework {
	case TargetHTML:
		content = htmlPlaceholder(cfg.Name)
	case TargetNextJS:
		content = reactPlaceholder(cfg.Name, "Page")
	default:
		content = reactPlaceholder(cfg.Name, "App")
	}
	return GeneratedPage{
		Name:    "index",
		Path:    cfg.MainSourcePath(),
		Content: content,
	}
}

// GenerateFromRecipe renders a page whose sections follow a composed
// recipe. Until fetched component code is assembled into pages, each
// section renders as a labeled stub carrying its headline slots.
func GenerateFromRecipe(recipe *compose.Recipe, cfg ProjectConfig, slots map[string]string) GeneratedPage {
	var sections []string
	var labels []string
	for _, sec := range recipe.Sections {
		labels = append(labels, fmt.Sprintf("// Section: %s (variant: %s)", sec.SectionType, sec.VariantID))
		sections = append(sections, sectionStub(sec, slots))
	}

	funcName := "App"
	if cfg.Framework == TargetNextJS {
		funcName = "Page"
	}
	var b strings.Builder
	if len(labels) > 0 {
		b.WriteString(strings.Join(labels, "\n"))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "export default function %s() {\n", funcName)
	b.WriteString("  return (\n")
	b.WriteString("    <div className=\"min-h-screen bg-white\">\n")
	b.WriteString(strings.Join(sections, "\n\n"))
	b.WriteString("\n    </div>\n  )\n}\n")

	return GeneratedPage{
		Name:         "index",
		Path:         cfg.MainSourcePath(),
		Content:      b.String(),
		Dependencies: append([]string(nil), recipe.Dependencies...),
	}
}

// WritePage writes a generated page, creating parent directories.
func WritePage(page GeneratedPage) error {
	if err := os.MkdirAll(filepath.Dir(page.Path), 0o755); err != nil {
		return apperr.Transientf("creating %s: %v", filepath.Dir(page.Path), err)
	}
	if err := os.WriteFile(page.Path, []byte(page.Content), 0o644); err != nil {
		return apperr.Transientf("writing %s: %v", page.Path, err)
	}
	return nil
}

// sectionComponentName converts a section type to a PascalCase name, so
// "social-proof" reads as SocialProof in the stub labels.
func sectionComponentName(sectionType string) string {
	var b strings.Builder
	for _, word := range strings.Split(sectionType, "-") {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	return b.String()
}

func sectionStub(sec compose.RecipeSection, overrides map[string]string) string {
	slot := func(name, fallback string) string {
		if v, ok := overrides[name]; ok {
			return v
		}
		if v, ok := sec.Slots[name]; ok {
			return v
		}
		return fallback
	}
	headline := slot("headline", "Welcome")
	subheadline := slot("subheadline", "Build something amazing.")

	return fmt.Sprintf(`      {/* %s Section - %s */}
      <section className="py-16 px-4">
        <div className="max-w-7xl mx-auto">
          <h2 className="text-3xl font-bold text-gray-900">%s</h2>
          <p className="mt-4 text-lg text-gray-600">%s</p>
        </div>
      </section>`,
		sectionComponentName(sec.SectionType), sec.VariantID, headline, subheadline)
}

func reactPlaceholder(projectName, funcName string) string {
	return fmt.Sprintf(`export default function %s() {
  return (
    <div className="min-h-screen bg-white">
      <div className="mx-auto max-w-7xl px-4 py-24 sm:px-6 lg:px-8">
        <div className="text-center">
          <h1 className="text-4xl font-bold tracking-tight text-gray-900 sm:text-5xl">
            Welcome to %s
          </h1>
          <p className="mt-6 text-lg text-gray-600">
            Your site is ready. Run <code className="rounded bg-gray-100 px-2 py-1 font-mono text-sm">draftkit generate</code> to add components.
          </p>
        </div>
      </div>
    </div>
  )
}
`, funcName, projectName)
}

func htmlPlaceholder(projectName string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <link href="./output.css" rel="stylesheet">
</head>
<body class="min-h-screen bg-white">
  <div class="mx-auto max-w-7xl px-4 py-24 sm:px-6 lg:px-8">
    <div class="text-center">
      <h1 class="text-4xl font-bold tracking-tight text-gray-900 sm:text-5xl">
        Welcome to %s
      </h1>
      <p class="mt-6 text-lg text-gray-600">
        Your site is ready. Run <code class="rounded bg-gray-100 px-2 py-1 font-mono text-sm">draftkit generate</code> to add components.
      </p>
    </div>
  </div>
</body>
</html>
`, projectName, projectName)
}
