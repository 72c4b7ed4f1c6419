package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"draftkit/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Render(t *testing.T) {
	cfg := NewProjectConfig("my-site", t.TempDir())
	e := NewEngine(cfg)

	out, err := e.Render(`"name": "{{.ProjectName}}"`)
	require.NoError(t, err)
	assert.Equal(t, `"name": "my-site"`, out)

	e.Set("ProjectName", "other")
	out, err = e.Render("{{.ProjectName}}")
	require.NoError(t, err)
	assert.Equal(t, "other", out)
}

func TestEngine_RenderTailwindConditional(t *testing.T) {
	v4 := NewProjectConfig("a", t.TempDir())
	out, err := NewEngine(v4).Render(tailwindIndexCSS)
	require.NoError(t, err)
	assert.Contains(t, out, `@import "tailwindcss";`)

	v3 := NewProjectConfig("b", t.TempDir())
	v3.Tailwind = catalog.TailwindV3
	out, err = NewEngine(v3).Render(tailwindIndexCSS)
	require.NoError(t, err)
	assert.Contains(t, out, "@tailwind base;")
	assert.NotContains(t, out, "@import")
}

func TestScaffold_ViteReact(t *testing.T) {
	cfg := NewProjectConfig("test-project", t.TempDir())

	created, err := NewEngine(cfg).Scaffold(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, created)

	pkg, err := os.ReadFile(filepath.Join(cfg.Dir, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(pkg), `"name": "test-project"`)

	// Nested directories are created as needed.
	assert.FileExists(t, filepath.Join(cfg.Dir, "src", "main.tsx"))
	assert.FileExists(t, filepath.Join(cfg.Dir, "src", "index.css"))

	// The page itself comes from the generator, not the template set.
	assert.NoFileExists(t, filepath.Join(cfg.Dir, "src", "App.tsx"))
}

func TestScaffold_EveryFrameworkHasPackageJSON(t *testing.T) {
	for _, target := range []FrameworkTarget{TargetHTML, TargetViteReact, TargetNextJS} {
		cfg := NewProjectConfig("site", t.TempDir())
		cfg.Framework = target

		_, err := NewEngine(cfg).Scaffold(cfg)
		require.NoError(t, err, target)
		assert.FileExists(t, filepath.Join(cfg.Dir, "package.json"), target)
	}
}
