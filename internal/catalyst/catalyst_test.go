package catalyst

import (
	"os"
	"path/filepath"
	"testing"

	"draftkit/internal/apperr"
	"draftkit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	for _, s := range []string{"typescript", "ts", "TSX", ""} {
		lang, err := ParseLanguage(s)
		require.NoError(t, err)
		assert.Equal(t, TypeScript, lang)
	}
	for _, s := range []string{"javascript", "JS", "jsx"} {
		lang, err := ParseLanguage(s)
		require.NoError(t, err)
		assert.Equal(t, JavaScript, lang)
	}
	_, err := ParseLanguage("rust")
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidInput(err))
}

func TestList_FromDisk(t *testing.T) {
	paths := config.DataPaths{Root: t.TempDir()}
	dir := paths.CatalystDir("typescript")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "button.tsx"), []byte("export function Button() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dialog.tsx"), []byte("export function Dialog() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0o644))

	kit := NewKit(paths)
	components := kit.List(TypeScript)
	require.Len(t, components, 2)
	assert.Equal(t, "button", components[0].Name)
	assert.Equal(t, "tsx", components[0].Extension)
	assert.Contains(t, components[0].Description, "button variants")
}

func TestList_StaticFallback(t *testing.T) {
	kit := NewKit(config.DataPaths{Root: t.TempDir()})

	components := kit.List(JavaScript)
	assert.Len(t, components, 27)
	names := make(map[string]bool)
	for _, c := range components {
		names[c.Name] = true
		assert.Equal(t, "jsx", c.Extension)
	}
	assert.True(t, names["button"])
	assert.True(t, names["sidebar-layout"])
}

func TestGet(t *testing.T) {
	paths := config.DataPaths{Root: t.TempDir()}
	dir := paths.CatalystDir("javascript")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "badge.jsx"), []byte("export function Badge() {}\n"), 0o644))

	kit := NewKit(paths)
	code, err := kit.Get("badge", JavaScript)
	require.NoError(t, err)
	assert.Contains(t, code, "Badge")

	_, err = kit.Get("badge", TypeScript)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Contains(t, err.Error(), "not downloaded", "known components point at the sync step")

	_, err = kit.Get("flux-capacitor", TypeScript)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown catalyst component")
}
