package docs

import (
	"os"
	"path/filepath"
	"testing"

	"draftkit/internal/apperr"
	"draftkit/internal/catalog"
	"draftkit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) (*Store, config.DataPaths) {
	t.Helper()
	paths := config.DataPaths{Root: t.TempDir()}
	return NewStore(paths), paths
}

func TestGet_StripsFrontmatter(t *testing.T) {
	store, paths := testStore(t)
	dir := paths.DocsDir("v4")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flexbox.md"),
		[]byte("---\ntitle: Flexbox\n---\n# Flexbox\n\nUse flex to create a container.\n"), 0o644))

	body, err := store.Get("flexbox", catalog.TailwindV4)
	require.NoError(t, err)
	assert.Contains(t, body, "# Flexbox")
	assert.NotContains(t, body, "title:")
}

func TestGet_PlainMarkdown(t *testing.T) {
	store, paths := testStore(t)
	dir := paths.DocsDir("v3")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grid.md"), []byte("# Grid\n"), 0o644))

	body, err := store.Get("grid", catalog.TailwindV3)
	require.NoError(t, err)
	assert.Equal(t, "# Grid\n", body)
}

func TestGet_NotDownloaded(t *testing.T) {
	store, _ := testStore(t)
	_, err := store.Get("flexbox", catalog.TailwindV4)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGet_UnknownTopicSuggests(t *testing.T) {
	store, _ := testStore(t)
	_, err := store.Get("flexbo", catalog.TailwindV4)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Contains(t, err.Error(), "flexbox")
}

func TestGet_VersionGate(t *testing.T) {
	store, _ := testStore(t)
	_, err := store.Get("v4-changes", catalog.TailwindV3)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidInput(err))
}

func TestListTopics(t *testing.T) {
	v4 := ListTopics(catalog.TailwindV4)
	assert.Len(t, v4, 24)

	v3 := ListTopics(catalog.TailwindV3)
	assert.Len(t, v3, 23)
	for _, topic := range v3 {
		assert.NotEqual(t, "v4-changes", topic.Name)
	}
}

func TestSearchTopics(t *testing.T) {
	results := SearchTopics("shadow", catalog.TailwindV4)
	require.NotEmpty(t, results)
	assert.Equal(t, "effects", results[0].Name)

	assert.Empty(t, SearchTopics("quaternion", catalog.TailwindV4))
}
