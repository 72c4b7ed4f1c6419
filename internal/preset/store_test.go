package preset

import (
	"os"
	"path/filepath"
	"testing"

	"draftkit/internal/apperr"
	"draftkit/internal/style"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePreset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestBuiltinPresets(t *testing.T) {
	s := NewStore("", "")

	assert.ElementsMatch(t, []string{"minimalist", "neubrutalism", "corporate"}, s.Names())

	min, err := s.Get("minimalist")
	require.NoError(t, err)
	require.NotNil(t, min.StyleOverrides.VisualWeightMax)
	assert.Equal(t, 0.3, *min.StyleOverrides.VisualWeightMax)
	assert.Equal(t, "hero-simple-centered", min.VariantPreferences["hero"])
	assert.Equal(t, []style.TypographyScale{style.ScaleSmall, style.ScaleMedium}, min.StyleOverrides.TypographyScales)

	corp, err := s.Get("corporate")
	require.NoError(t, err)
	assert.Contains(t, corp.Blacklist.Tags, "playful")
}

func TestStacking_LastWriterWins(t *testing.T) {
	s := NewStore("", "")

	// minimalist sets visual_weight_max=0.3; neubrutalism sets
	// visual_weight_min=0.6. Both must survive the merge verbatim.
	require.NoError(t, s.Activate("minimalist"))
	require.NoError(t, s.Activate("neubrutalism"))

	merged := s.MergedStyleOverrides()
	require.NotNil(t, merged.VisualWeightMax)
	require.NotNil(t, merged.VisualWeightMin)
	assert.Equal(t, 0.3, *merged.VisualWeightMax)
	assert.Equal(t, 0.6, *merged.VisualWeightMin)

	prefs := s.MergedVariantPreferences()
	assert.Equal(t, "hero-split-screenshot", prefs["hero"], "later preset overrides")
	assert.Equal(t, "footer-simple", prefs["footer"], "untouched keys survive")

	s.Deactivate("minimalist")
	merged = s.MergedStyleOverrides()
	assert.Nil(t, merged.VisualWeightMax, "only neubrutalism's fields remain")
	require.NotNil(t, merged.VisualWeightMin)
	assert.Equal(t, 0.6, *merged.VisualWeightMin)
}

func TestMergedVariantPreferencesFor_ExplicitStack(t *testing.T) {
	s := NewStore("", "")
	require.NoError(t, s.Activate("corporate"))

	prefs, err := s.MergedVariantPreferencesFor([]string{"minimalist", "neubrutalism"})
	require.NoError(t, err)
	assert.Equal(t, "hero-split-screenshot", prefs["hero"], "later preset overrides")
	assert.Equal(t, []string{"corporate"}, s.ActiveStack(), "active stack untouched")

	_, err = s.MergedVariantPreferencesFor([]string{"vaporwave"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestActivate_DeduplicatesByMoving(t *testing.T) {
	s := NewStore("", "")

	require.NoError(t, s.Activate("minimalist"))
	require.NoError(t, s.Activate("corporate"))
	require.NoError(t, s.Activate("minimalist"))

	assert.Equal(t, []string{"corporate", "minimalist"}, s.ActiveStack())

	err := s.Activate("nope")
	assert.True(t, apperr.IsNotFound(err))
}

func TestSetStack_Atomic(t *testing.T) {
	s := NewStore("", "")
	require.NoError(t, s.SetStack([]string{"minimalist"}))

	err := s.SetStack([]string{"corporate", "ghost"})
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, []string{"minimalist"}, s.ActiveStack(), "failed SetStack leaves the stack unchanged")
}

func TestExtendsChain_RootFirst(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "base.toml", `[preset]
name = "base"
[preset.style_overrides]
visual_weight_max = 0.8
formality_min = 0.2
[preset.variant_preferences]
hero = "hero-centered"
`)
	writePreset(t, dir, "child.toml", `[preset]
name = "child"
extends = "base"
[preset.style_overrides]
visual_weight_max = 0.4
`)

	s := NewStore(dir, "")
	require.NoError(t, s.Activate("child"))

	merged := s.MergedStyleOverrides()
	require.NotNil(t, merged.VisualWeightMax)
	assert.Equal(t, 0.4, *merged.VisualWeightMax, "child overrides parent")
	require.NotNil(t, merged.FormalityMin)
	assert.Equal(t, 0.2, *merged.FormalityMin, "parent fields inherited")
	assert.Equal(t, "hero-centered", s.MergedVariantPreferences()["hero"])
}

func TestExtendsCycle_DroppedAtLoad(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "a.toml", `[preset]
name = "cycle-a"
extends = "cycle-b"
`)
	writePreset(t, dir, "b.toml", `[preset]
name = "cycle-b"
extends = "cycle-a"
`)
	writePreset(t, dir, "ok.toml", `[preset]
name = "standalone"
`)

	s := NewStore(dir, "")

	_, err := s.Get("cycle-a")
	assert.True(t, apperr.IsNotFound(err))
	_, err = s.Get("cycle-b")
	assert.True(t, apperr.IsNotFound(err))
	_, err = s.Get("standalone")
	assert.NoError(t, err)
}

func TestReload_PreservesStackAndPrunes(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "temp.toml", `[preset]
name = "temporary"
`)

	s := NewStore(dir, "")
	require.NoError(t, s.SetStack([]string{"minimalist", "temporary"}))

	before := s.MergedStyleOverrides()

	s.Reload()
	assert.Equal(t, []string{"minimalist", "temporary"}, s.ActiveStack())
	assert.Equal(t, before, s.MergedStyleOverrides(), "idempotent reload keeps merge results identical")

	require.NoError(t, os.Remove(filepath.Join(dir, "temp.toml")))
	s.Reload()
	assert.Equal(t, []string{"minimalist"}, s.ActiveStack(), "vanished presets are pruned")
}

func TestRemoveAndReaddSamePosition(t *testing.T) {
	s := NewStore("", "")
	require.NoError(t, s.SetStack([]string{"minimalist", "neubrutalism"}))
	want := s.MergedStyleOverrides()
	wantPrefs := s.MergedVariantPreferences()

	s.Deactivate("neubrutalism")
	require.NoError(t, s.Activate("neubrutalism"))

	assert.Equal(t, want, s.MergedStyleOverrides())
	assert.Equal(t, wantPrefs, s.MergedVariantPreferences())
}

func TestIsBlacklisted(t *testing.T) {
	s := NewStore("", "")
	require.NoError(t, s.Activate("corporate"))

	assert.True(t, s.IsBlacklisted("any-id", []string{"playful"}, "Marketing"))
	assert.False(t, s.IsBlacklisted("any-id", []string{"serious"}, "Marketing"))
}

func TestIsBlacklisted_CategoryPrefix(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "nostore.toml", `[preset]
name = "no-ecommerce"
[preset.blacklist]
categories = ["Ecommerce"]
components = ["hero-banner-sale"]
`)
	s := NewStore(dir, "")
	require.NoError(t, s.Activate("no-ecommerce"))

	assert.True(t, s.IsBlacklisted("x", nil, "Ecommerce"))
	assert.True(t, s.IsBlacklisted("x", nil, "Ecommerce / Product Overviews"))
	assert.True(t, s.IsBlacklisted("hero-banner-sale", nil, "Marketing"))
	assert.False(t, s.IsBlacklisted("x", nil, "Marketing"))
}

func TestParse_UnknownTypographyScale(t *testing.T) {
	_, err := Parse([]byte(`[preset]
name = "bad"
[preset.style_overrides]
typography_scales = ["enormous"]
`), SourceUser)
	assert.True(t, apperr.IsValidation(err))
}

func TestActiveStack_PersistsAcrossStores(t *testing.T) {
	projectDir := t.TempDir()

	s := NewStore("", projectDir)
	require.NoError(t, s.SetStack([]string{"minimalist", "corporate"}))
	require.NoError(t, s.SaveActive())

	reopened := NewStore("", projectDir)
	require.NoError(t, reopened.LoadActive())
	assert.Equal(t, []string{"minimalist", "corporate"}, reopened.ActiveStack())
}

func TestLoadActive_MissingFileIsEmptyStack(t *testing.T) {
	s := NewStore("", t.TempDir())
	require.NoError(t, s.LoadActive())
	assert.Empty(t, s.ActiveStack())
}

func TestLoadActive_DropsUnknownNames(t *testing.T) {
	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "active-stack.json"),
		[]byte(`["minimalist", "vaporwave"]`), 0o644))

	s := NewStore("", projectDir)
	require.NoError(t, s.LoadActive())
	assert.Equal(t, []string{"minimalist"}, s.ActiveStack())
}

func TestSaveActive_LeavesNoTempFile(t *testing.T) {
	projectDir := t.TempDir()

	s := NewStore("", projectDir)
	require.NoError(t, s.Activate("corporate"))
	require.NoError(t, s.SaveActive())

	entries, err := os.ReadDir(projectDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "active-stack.json", entries[0].Name())
}
