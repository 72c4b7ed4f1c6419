package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, dir string, fw Framework, lines string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, string(fw)+"-v4.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
}

func TestLoad_RuntimeCorpus(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, FrameworkReact, `{"id":"hero-a","uuid":"u1","name":"Split with code","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"Hero Sections","modes":["light"]}
{"id":"hero-b","uuid":"u2","name":"Centered","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"Hero Sections","modes":["light","dark"]}
`)

	c := Load(dir)
	assert.Equal(t, SourceRuntime, c.Source())
	assert.True(t, c.HasFramework(FrameworkReact))
	assert.False(t, c.HasFramework(FrameworkVue))
	assert.Equal(t, 2, c.ComponentCount(FrameworkReact))

	rec, ok := c.FindByID(FrameworkReact, "hero-b")
	require.True(t, ok)
	assert.Equal(t, "Centered", rec.Name)
}

func TestLoad_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, FrameworkReact, `{"id":"good","uuid":"u1","name":"Good","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"Hero Sections"}
this line is not json
{"name":"missing id"}

{"id":"also-good","uuid":"u2","name":"Also good","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"Footers"}
`)

	c := Load(dir)
	assert.Equal(t, 2, c.ComponentCount(FrameworkReact))
}

func TestLoad_EmbeddedFallback(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Equal(t, SourceEmbedded, c.Source())
	assert.True(t, c.HasFramework(FrameworkReact))

	rec, ok := c.FindByID(FrameworkReact, "hero-split-screenshot")
	require.True(t, ok)
	assert.Equal(t, "Hero Sections", rec.SubSubcategory)
}

func TestSearch(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, FrameworkReact, `{"id":"a","uuid":"u1","name":"Split with screenshot","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"Hero Sections"}
{"id":"b","uuid":"u2","name":"Accordion","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"FAQs"}
{"id":"c","uuid":"u3","name":"Simple centered","category":"Marketing","subcategory":"Page Sections","sub_subcategory":"Hero Sections"}
`)
	c := Load(dir)

	// Case-insensitive match across name and taxonomy, insertion order.
	got := c.Search(FrameworkReact, "HERO")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	// Empty query matches everything.
	assert.Len(t, c.Search(FrameworkReact, ""), 3)

	// No hits.
	assert.Empty(t, c.Search(FrameworkReact, "pricing"))
}

func TestModeFallback(t *testing.T) {
	rec := &ComponentRecord{
		ID:       "product-overview",
		Modes:    []Mode{ModeNone},
		Previews: map[Mode]string{ModeLight: "https://example.com/p.png"},
	}

	assert.True(t, rec.HasMode(ModeNone))
	assert.True(t, rec.HasMode(ModeLight), "none-mode records answer light")
	assert.False(t, rec.HasMode(ModeDark), "only the light fallback exists")

	url, ok := rec.PreviewURL(ModeNone)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/p.png", url)

	_, ok = rec.PreviewURL(ModeDark)
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, FrameworkReact, `{"id":"a","uuid":"u1","name":"A","category":"Marketing","subcategory":"x","sub_subcategory":"y"}
{"id":"b","uuid":"u2","name":"B","category":"Ecommerce","subcategory":"x","sub_subcategory":"y"}
{"id":"c","uuid":"u3","name":"C","category":"Marketing","subcategory":"x","sub_subcategory":"y"}
`)
	c := Load(dir)

	got := c.Categories(FrameworkReact)
	require.Len(t, got, 2)
	assert.Equal(t, CategoryCount{Name: "Ecommerce", Count: 1}, got[0])
	assert.Equal(t, CategoryCount{Name: "Marketing", Count: 2}, got[1])
}

func TestParseFramework(t *testing.T) {
	fw, err := ParseFramework(" React ")
	require.NoError(t, err)
	assert.Equal(t, FrameworkReact, fw)
	assert.Equal(t, "jsx", fw.Ext())

	_, err = ParseFramework("svelte")
	assert.Error(t, err)
}

func TestParseTailwindVersion(t *testing.T) {
	for _, s := range []string{"3", "v3", "V3"} {
		v, err := ParseTailwindVersion(s)
		require.NoError(t, err)
		assert.Equal(t, TailwindV3, v)
	}
	v, err := ParseTailwindVersion("")
	require.NoError(t, err)
	assert.Equal(t, TailwindV4, v, "empty defaults to v4")

	_, err = ParseTailwindVersion("v5")
	assert.Error(t, err)
}
