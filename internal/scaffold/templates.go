package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"draftkit/internal/apperr"
	"draftkit/internal/catalog"
)

// templateFile is one rendered file of a framework template set, with its
// project-relative path.
type templateFile struct {
	path    string
	content string
}

// Engine renders a framework's template set with per-project data.
type Engine struct {
	data map[string]any
}

// NewEngine seeds the template data from a project config.
func NewEngine(cfg ProjectConfig) *Engine {
	return &Engine{data: map[string]any{
		"ProjectName":     cfg.Name,
		"TailwindVersion": string(cfg.Tailwind),
		"TailwindV4":      cfg.Tailwind == catalog.TailwindV4,
	}}
}

// Set overrides or adds one template variable.
func (e *Engine) Set(key string, value any) {
	e.data[key] = value
}

// Render executes one template string against the engine's data.
func (e *Engine) Render(content string) (string, error) {
	tmpl, err := template.New("scaffold").Parse(content)
	if err != nil {
		return "", apperr.Statef("parsing scaffold template: %v", err)
	}
	var buf strings.Builder
	if err := tmpl.Execute(&buf, e.data); err != nil {
		return "", apperr.Statef("rendering scaffold template: %v", err)
	}
	return buf.String(), nil
}

// Scaffold writes the framework's template set under the project directory
// and returns the created paths. The initial page itself comes from the
// generator, not the template set.
func (e *Engine) Scaffold(cfg ProjectConfig) ([]string, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, apperr.Transientf("creating project directory: %v", err)
	}

	var created []string
	for _, tf := range frameworkTemplates(cfg.Framework) {
		target := filepath.Join(cfg.Dir, filepath.FromSlash(tf.path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return created, apperr.Transientf("creating %s: %v", filepath.Dir(target), err)
		}
		content, err := e.Render(tf.content)
		if err != nil {
			return created, err
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return created, apperr.Transientf("writing %s: %v", target, err)
		}
		created = append(created, target)
	}
	return created, nil
}

// frameworkTemplates returns the template set for a framework. Plain HTML
// projects consist of the generated page plus a package.json for the
// Tailwind CLI; Next.js reuses the React sources it shares with Vite.
func frameworkTemplates(t FrameworkTarget) []templateFile {
	switch t {
	case TargetViteReact:
		return viteReactTemplates
	case TargetHTML:
		return htmlTemplates
	case TargetNextJS:
		return nextJSTemplates
	default:
		return nil
	}
}

var viteReactTemplates = []templateFile{
	{"package.json", viteReactPackageJSON},
	{"vite.config.ts", viteConfigTS},
	{"tsconfig.json", viteTSConfig},
	{"index.html", viteIndexHTML},
	{".gitignore", nodeGitignore},
	{"src/main.tsx", viteMainTSX},
	{"src/index.css", tailwindIndexCSS},
	{"src/vite-env.d.ts", viteEnvDTS},
}

var htmlTemplates = []templateFile{
	{"package.json", htmlPackageJSON},
	{".gitignore", nodeGitignore},
	{"input.css", tailwindIndexCSS},
}

var nextJSTemplates = []templateFile{
	{"package.json", nextPackageJSON},
	{"tsconfig.json", nextTSConfig},
	{".gitignore", nodeGitignore},
	{"app/layout.tsx", nextLayoutTSX},
	{"app/globals.css", tailwindIndexCSS},
	{"next.config.ts", nextConfigTS},
	{"postcss.config.mjs", nextPostCSSConfig},
}

const viteReactPackageJSON = `{
  "name": "{{.ProjectName}}",
  "private": true,
  "version": "0.0.0",
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "tsc -b && vite build",
    "preview": "vite preview"
  },
  "dependencies": {
    "react": "^19.0.0",
    "react-dom": "^19.0.0",
    "tailwindcss": "^4.0.0",
    "@tailwindcss/vite": "^4.0.0"
  },
  "devDependencies": {
    "@types/react": "^19.0.0",
    "@types/react-dom": "^19.0.0",
    "@vitejs/plugin-react": "^4.3.4",
    "typescript": "~5.7.2",
    "vite": "^6.0.0"
  }
}
`

const viteConfigTS = `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'
import tailwindcss from '@tailwindcss/vite'

export default defineConfig({
  plugins: [react(), tailwindcss()],
})
`

const viteTSConfig = `{
  "compilerOptions": {
    "target": "ES2022",
    "lib": ["ES2022", "DOM", "DOM.Iterable"],
    "module": "ESNext",
    "moduleResolution": "bundler",
    "jsx": "react-jsx",
    "strict": true,
    "noEmit": true,
    "skipLibCheck": true
  },
  "include": ["src"]
}
`

const viteIndexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>{{.ProjectName}}</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.tsx"></script>
  </body>
</html>
`

const viteMainTSX = `import { StrictMode } from 'react'
import { createRoot } from 'react-dom/client'
import './index.css'
import App from './App.tsx'

createRoot(document.getElementById('root')!).render(
  <StrictMode>
    <App />
  </StrictMode>,
)
`

const viteEnvDTS = `/// <reference types="vite/client" />
`

const tailwindIndexCSS = `{{if .TailwindV4}}@import "tailwindcss";
{{else}}@tailwind base;
@tailwind components;
@tailwind utilities;
{{end}}`

const nodeGitignore = `node_modules
dist
.next
*.local
`

const htmlPackageJSON = `{
  "name": "{{.ProjectName}}",
  "private": true,
  "version": "0.0.0",
  "scripts": {
    "dev": "tailwindcss -i ./input.css -o ./output.css --watch",
    "build": "tailwindcss -i ./input.css -o ./output.css --minify"
  },
  "devDependencies": {
    "@tailwindcss/cli": "^4.0.0",
    "tailwindcss": "^4.0.0"
  }
}
`

const nextPackageJSON = `{
  "name": "{{.ProjectName}}",
  "private": true,
  "version": "0.0.0",
  "scripts": {
    "dev": "next dev",
    "build": "next build",
    "start": "next start"
  },
  "dependencies": {
    "next": "^15.1.0",
    "react": "^19.0.0",
    "react-dom": "^19.0.0"
  },
  "devDependencies": {
    "@tailwindcss/postcss": "^4.0.0",
    "@types/node": "^22.0.0",
    "@types/react": "^19.0.0",
    "@types/react-dom": "^19.0.0",
    "tailwindcss": "^4.0.0",
    "typescript": "~5.7.2"
  }
}
`

const nextTSConfig = `{
  "compilerOptions": {
    "target": "ES2022",
    "lib": ["ES2022", "DOM", "DOM.Iterable"],
    "module": "ESNext",
    "moduleResolution": "bundler",
    "jsx": "preserve",
    "strict": true,
    "noEmit": true,
    "skipLibCheck": true,
    "plugins": [{ "name": "next" }]
  },
  "include": ["next-env.d.ts", "**/*.ts", "**/*.tsx"],
  "exclude": ["node_modules"]
}
`

const nextLayoutTSX = `import './globals.css'

export const metadata = {
  title: '{{.ProjectName}}',
}

export default function RootLayout({ children }: { children: React.ReactNode }) {
  return (
    <html lang="en">
      <body>{children}</body>
    </html>
  )
}
`

const nextConfigTS = `import type { NextConfig } from 'next'

const nextConfig: NextConfig = {}

export default nextConfig
`

const nextPostCSSConfig = `export default {
  plugins: {
    '@tailwindcss/postcss': {},
  },
}
`
