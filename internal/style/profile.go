// Package style derives design-DNA vectors from component source text by
// inspecting its Tailwind utility-class usage. Extraction is pure and
// deterministic; callers may memoize results.
package style

import "strings"

// TypographyScale buckets the largest text-size token in a component.
type TypographyScale string

const (
	ScaleSmall  TypographyScale = "small"
	ScaleMedium TypographyScale = "medium"
	ScaleLarge  TypographyScale = "large"
)

func ParseTypographyScale(s string) (TypographyScale, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return ScaleSmall, true
	case "medium":
		return ScaleMedium, true
	case "large":
		return ScaleLarge, true
	}
	return "", false
}

// Profile is the 5-axis style vector. All numeric axes lie in [0,1].
type Profile struct {
	VisualWeight    float64         `json:"visual_weight"`
	Formality       float64         `json:"formality"`
	ColorIntensity  float64         `json:"color_intensity"`
	SpacingDensity  float64         `json:"spacing_density"`
	TypographyScale TypographyScale `json:"typography_scale"`
}

// DefaultProfile is what the extractor returns for empty input.
func DefaultProfile() Profile {
	return Profile{
		VisualWeight:    0.0,
		Formality:       0.5,
		ColorIntensity:  0.0,
		SpacingDensity:  0.5,
		TypographyScale: ScaleSmall,
	}
}

// Average folds profiles into their arithmetic mean per numeric axis. The
// typography scale of the first profile wins; it is categorical and cannot
// be averaged. An empty slice yields the default profile.
func Average(profiles []Profile) Profile {
	if len(profiles) == 0 {
		return DefaultProfile()
	}
	out := Profile{TypographyScale: profiles[0].TypographyScale}
	for _, p := range profiles {
		out.VisualWeight += p.VisualWeight
		out.Formality += p.Formality
		out.ColorIntensity += p.ColorIntensity
		out.SpacingDensity += p.SpacingDensity
	}
	n := float64(len(profiles))
	out.VisualWeight /= n
	out.Formality /= n
	out.ColorIntensity /= n
	out.SpacingDensity /= n
	return out
}
