package intel

import (
	"os"
	"path/filepath"
	"testing"

	"draftkit/internal/style"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intel", "component-intelligence.json")

	d := &Dataset{
		Components: map[string]Component{
			"hero-split": {
				Style: style.Profile{VisualWeight: 0.4, Formality: 0.7, SpacingDensity: 0.5, TypographyScale: style.ScaleLarge},
				Usage: Usage{
					Frequency:  0.8,
					FollowedBy: []Neighbor{{ID: "feature-grid", Count: 3}},
					PageTypes:  []string{"saas"},
					Position:   "hero",
				},
			},
		},
		Metadata: Metadata{TotalSections: 1, TotalPages: 4},
	}

	require.NoError(t, d.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, d.Metadata, loaded.Metadata)

	c, ok := loaded.Get("hero-split")
	require.True(t, ok)
	assert.Equal(t, 0.8, c.Usage.Frequency)
	assert.Equal(t, style.ScaleLarge, c.Style.TypographyScale)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")
}

func TestLoad_MissingFile(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Nil(t, d, "missing dataset is simply absent intelligence")
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestGet_NilDataset(t *testing.T) {
	var d *Dataset
	_, ok := d.Get("anything")
	assert.False(t, ok)
}
