package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_EmptyInput(t *testing.T) {
	assert.Equal(t, DefaultProfile(), Extract(""))
	assert.Equal(t, DefaultProfile(), Extract("const x = 1;"))
}

func TestExtract_AxesInRange(t *testing.T) {
	sources := []string{
		`<div className="bg-gradient-to-r from-purple-500 to-pink-500 shadow-2xl rounded-3xl ring-4 border-2 p-16 text-9xl">`,
		`<div class="p-1 text-xs bg-gray-50">`,
		`clsx("shadow-lg", "md:p-8")`,
		"const cls = `flex items-center gap-4 hover:bg-blue-500`;",
	}
	for _, src := range sources {
		p := Extract(src)
		for name, v := range map[string]float64{
			"visual_weight":   p.VisualWeight,
			"formality":       p.Formality,
			"color_intensity": p.ColorIntensity,
			"spacing_density": p.SpacingDensity,
		} {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 1.0, name)
		}
	}
}

func TestExtract_ClassAttribute(t *testing.T) {
	p := Extract(`<div className="shadow-lg rounded-xl p-8 text-xl bg-gray-100">`)

	// shadow-lg 2.0 + rounded-xl 0.5, normalized by 15.
	assert.InDelta(t, 2.5/15.0, p.VisualWeight, 1e-9)
	assert.Equal(t, 1.0, p.Formality, "only a formal hue present")
	assert.Equal(t, ScaleMedium, p.TypographyScale)
	assert.InDelta(t, 0.5, p.SpacingDensity, 1e-9) // mean(8)/16
}

func TestExtract_HelperCalls(t *testing.T) {
	p := Extract(`const c = cn("bg-indigo-600 text-white", "shadow-md");`)

	assert.InDelta(t, 1.5/15.0, p.VisualWeight, 1e-9)
	// indigo is casual, white is formal.
	assert.InDelta(t, 0.5, p.Formality, 1e-9)
}

func TestExtract_TemplateLiterals(t *testing.T) {
	// Only utility-looking words are taken from template strings.
	p := Extract("const cls = `${active} bg-red-500 someVariable p-4`;")

	assert.Greater(t, p.ColorIntensity, 0.0)
	assert.InDelta(t, 4.0/16.0, p.SpacingDensity, 1e-9)
}

func TestExtract_VariantStripping(t *testing.T) {
	p := Extract(`<div className="md:hover:shadow-xl lg:p-8">`)

	assert.InDelta(t, 2.5/15.0, p.VisualWeight, 1e-9)
	assert.InDelta(t, 0.5, p.SpacingDensity, 1e-9)
}

func TestExtract_FallbackWeights(t *testing.T) {
	// Gradient stops and unrecognized shadow/ring/rounded suffixes still
	// carry weight: from-* 2.0, shadow-inner 0.5, ring-offset-2 0.5,
	// rounded-t-lg 0.2.
	p := Extract(`<div class="from-blue-500 shadow-inner ring-offset-2 rounded-t-lg">`)
	assert.InDelta(t, 3.2/15.0, p.VisualWeight, 1e-9)
}

func TestExtract_SideBordersCarryNoWeight(t *testing.T) {
	p := Extract(`<div class="border-t border-b border-8 p-4">`)
	assert.Zero(t, p.VisualWeight)

	axis := Extract(`<div class="border-x p-4">`)
	assert.InDelta(t, 0.5/15.0, axis.VisualWeight, 1e-9)
}

func TestExtract_TransparentBorderIgnored(t *testing.T) {
	withBorder := Extract(`<div class="border-2 p-4">`)
	transparent := Extract(`<div class="border-transparent p-4">`)

	assert.Greater(t, withBorder.VisualWeight, transparent.VisualWeight)
	assert.Zero(t, transparent.VisualWeight)
}

func TestColorIntensity(t *testing.T) {
	// Five distinct vivid hues saturate the hue term; ten mid shades
	// saturate the shade term.
	p := Extract(`<div class="bg-red-500 text-blue-500 border-green-500 from-purple-500 to-pink-500 bg-amber-500 bg-teal-500 bg-cyan-500 bg-sky-500 bg-rose-500">`)
	assert.InDelta(t, 1.0, p.ColorIntensity, 1e-9)

	gray := Extract(`<div class="bg-gray-100 text-gray-900">`)
	assert.Zero(t, gray.ColorIntensity)
}

func TestSpacingValues(t *testing.T) {
	tests := []struct {
		tok  string
		want float64
		ok   bool
	}{
		{"p-4", 4, true},
		{"px-8", 8, true},
		{"gap-2", 2, true},
		{"space-y-6", 6, true},
		{"p-px", 0.25, true},
		{"p-0.5", 0.125, true},
		{"m-1.5", 0.375, true},
		{"p-1/2", 2, true},
		{"w-1/3", 0, false},
		{"text-lg", 0, false},
	}
	for _, tt := range tests {
		got, ok := spacingValue(tt.tok)
		require.Equal(t, tt.ok, ok, tt.tok)
		if ok {
			assert.InDelta(t, tt.want, got, 1e-9, tt.tok)
		}
	}
}

func TestTypographyBuckets(t *testing.T) {
	assert.Equal(t, ScaleSmall, Extract(`<p class="text-base">`).TypographyScale)
	assert.Equal(t, ScaleMedium, Extract(`<p class="text-2xl">`).TypographyScale)
	assert.Equal(t, ScaleLarge, Extract(`<h1 class="text-sm md:text-5xl">`).TypographyScale)
	// Color-only text utilities do not affect typography.
	assert.Equal(t, ScaleSmall, Extract(`<p class="text-gray-600">`).TypographyScale)
}

func TestAverage(t *testing.T) {
	a := Profile{VisualWeight: 0.2, Formality: 0.4, ColorIntensity: 0.0, SpacingDensity: 0.6, TypographyScale: ScaleMedium}
	b := Profile{VisualWeight: 0.6, Formality: 0.8, ColorIntensity: 0.4, SpacingDensity: 0.2, TypographyScale: ScaleLarge}

	avg := Average([]Profile{a, b})
	assert.InDelta(t, 0.4, avg.VisualWeight, 1e-9)
	assert.InDelta(t, 0.6, avg.Formality, 1e-9)
	assert.InDelta(t, 0.2, avg.ColorIntensity, 1e-9)
	assert.InDelta(t, 0.4, avg.SpacingDensity, 1e-9)
	assert.Equal(t, ScaleMedium, avg.TypographyScale, "first profile's scale wins")

	assert.Equal(t, DefaultProfile(), Average(nil))
}
