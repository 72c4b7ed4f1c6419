// Package scaffold creates new project directories: framework templates,
// package manager detection, and initial page generation from a recipe.
package scaffold

import (
	"path/filepath"
	"strings"

	"draftkit/internal/apperr"
	"draftkit/internal/catalog"
)

// FrameworkTarget selects the project template set.
type FrameworkTarget string

const (
	// TargetHTML is plain HTML driven by the Tailwind CLI.
	TargetHTML FrameworkTarget = "html"
	// TargetViteReact is Vite with React and TypeScript.
	TargetViteReact FrameworkTarget = "vite-react"
	// TargetNextJS is the Next.js app router.
	TargetNextJS FrameworkTarget = "nextjs"
)

// ParseFrameworkTarget accepts the canonical names plus common shorthands,
// case-insensitively.
func ParseFrameworkTarget(s string) (FrameworkTarget, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html":
		return TargetHTML, nil
	case "vite-react", "vitereact", "vite", "react":
		return TargetViteReact, nil
	case "nextjs", "next":
		return TargetNextJS, nil
	default:
		return "", apperr.InvalidInputf("unknown framework %q (expected html, vite-react, or nextjs)", s)
	}
}

func (t FrameworkTarget) String() string { return string(t) }

// UsesTypeScript reports whether the template set is TypeScript-based.
func (t FrameworkTarget) UsesTypeScript() bool {
	return t != TargetHTML
}

// RequiresBuild reports whether a bundler build step runs in development.
// Plain HTML only needs the Tailwind CLI watcher.
func (t FrameworkTarget) RequiresBuild() bool {
	return t != TargetHTML
}

// DefaultPort is where the dev server listens.
func (t FrameworkTarget) DefaultPort() int {
	if t == TargetViteReact {
		return 5173
	}
	return 3000
}

// MainSourcePath is the project-relative path of the generated page.
func (t FrameworkTarget) MainSourcePath() string {
	switch t {
	case TargetViteReact:
		return "src/App.tsx"
	case TargetNextJS:
		return "app/page.tsx"
	default:
		return "index.html"
	}
}

// ProjectConfig describes one project to scaffold.
type ProjectConfig struct {
	// Name is the project and directory name.
	Name string
	// Dir is the absolute project directory.
	Dir string
	Framework      FrameworkTarget
	PackageManager PackageManager
	Tailwind       catalog.TailwindVersion
	// Pattern optionally seeds the initial page.
	Pattern string
	// Preset optionally biases variant selection for that page.
	Preset      string
	SkipInstall bool
}

// NewProjectConfig fills the defaults: Vite with React, npm, Tailwind v4.
func NewProjectConfig(name, baseDir string) ProjectConfig {
	return ProjectConfig{
		Name:           name,
		Dir:            filepath.Join(baseDir, name),
		Framework:      TargetViteReact,
		PackageManager: PMNpm,
		Tailwind:       catalog.TailwindV4,
	}
}

// MainSourcePath is the absolute path of the generated page.
func (c ProjectConfig) MainSourcePath() string {
	return filepath.Join(c.Dir, c.Framework.MainSourcePath())
}
