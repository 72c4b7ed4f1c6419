package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftkit/internal/catalog"
	"draftkit/internal/config"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	return New(config.DataPaths{Root: t.TempDir()})
}

func TestStoreAndGet(t *testing.T) {
	c := testCache(t)

	assert.False(t, c.Has("hero-split", catalog.FrameworkReact, catalog.ModeLight))
	_, ok := c.Get("hero-split", catalog.FrameworkReact, catalog.ModeLight)
	assert.False(t, ok)

	path, err := c.Store("hero-split", catalog.FrameworkReact, catalog.ModeLight, "export default function Hero() {}")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.paths.CacheDir(), "components", "hero-split", "react-v4-light.jsx"), path)

	assert.True(t, c.Has("hero-split", catalog.FrameworkReact, catalog.ModeLight))
	code, ok := c.Get("hero-split", catalog.FrameworkReact, catalog.ModeLight)
	require.True(t, ok)
	assert.Equal(t, "export default function Hero() {}", code)

	// Other variants of the same component stay independent.
	assert.False(t, c.Has("hero-split", catalog.FrameworkReact, catalog.ModeDark))
	assert.False(t, c.Has("hero-split", catalog.FrameworkVue, catalog.ModeLight))
}

func TestPath_PerFrameworkExtension(t *testing.T) {
	c := testCache(t)

	assert.Equal(t, "react-v4-dark.jsx", filepath.Base(c.Path("x", catalog.FrameworkReact, catalog.ModeDark)))
	assert.Equal(t, "vue-v4-light.vue", filepath.Base(c.Path("x", catalog.FrameworkVue, catalog.ModeLight)))
	assert.Equal(t, "html-v4-none.html", filepath.Base(c.Path("x", catalog.FrameworkHTML, catalog.ModeNone)))
}

func TestStore_Overwrites(t *testing.T) {
	c := testCache(t)

	_, err := c.Store("badge", catalog.FrameworkHTML, catalog.ModeNone, "old")
	require.NoError(t, err)
	_, err = c.Store("badge", catalog.FrameworkHTML, catalog.ModeNone, "new")
	require.NoError(t, err)

	code, ok := c.Get("badge", catalog.FrameworkHTML, catalog.ModeNone)
	require.True(t, ok)
	assert.Equal(t, "new", code)
}

func TestStore_LeavesNoTempFile(t *testing.T) {
	c := testCache(t)

	path, err := c.Store("badge", catalog.FrameworkReact, catalog.ModeLight, "code")
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestStats(t *testing.T) {
	c := testCache(t)

	assert.Equal(t, Stats{}, c.Stats())

	_, err := c.Store("hero-split", catalog.FrameworkReact, catalog.ModeLight, "aaaa")
	require.NoError(t, err)
	_, err = c.Store("hero-split", catalog.FrameworkReact, catalog.ModeDark, "bbbbbb")
	require.NoError(t, err)
	_, err = c.Store("pricing-three-tier", catalog.FrameworkVue, catalog.ModeLight, "cc")
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, 3, stats.FileCount)
	assert.Equal(t, int64(12), stats.TotalBytes)
	assert.Equal(t, 2, stats.ComponentCount)
}

func TestClear(t *testing.T) {
	c := testCache(t)

	_, err := c.Store("hero-split", catalog.FrameworkReact, catalog.ModeLight, "12345")
	require.NoError(t, err)

	freed, err := c.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(5), freed)
	assert.False(t, c.Has("hero-split", catalog.FrameworkReact, catalog.ModeLight))
	assert.Equal(t, Stats{}, c.Stats())

	// Clearing an empty cache is fine.
	freed, err = c.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(0), freed)
}
