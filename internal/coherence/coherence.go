// Package coherence scores how well component style profiles fit together,
// pairwise and across a whole page. Scoring is synchronous and pure so it
// can be exercised without any runtime scaffolding.
package coherence

import (
	"math"
	"sort"

	"draftkit/internal/style"
)

// IssueCategory names the style axis a coherence issue concerns.
type IssueCategory string

const (
	CategoryVisualWeight   IssueCategory = "visual_weight"
	CategorySpacingDensity IssueCategory = "spacing_density"
	CategoryTypography     IssueCategory = "typography"
	CategoryFormality      IssueCategory = "formality"
	CategoryColorIntensity IssueCategory = "color_intensity"
)

// Issue is one detected clash, with a severity in [0,1].
type Issue struct {
	Category IssueCategory `json:"category"`
	Message  string        `json:"message"`
	Severity float64       `json:"severity"`
}

// Constraints bound the acceptable style spread for a page. Patterns carry
// their own; the zero value is unusable, use DefaultConstraints.
type Constraints struct {
	VisualWeightVariance   float64    `json:"visual_weight_variance" toml:"max_weight_variance"`
	SpacingDensityVariance float64    `json:"spacing_density_variance" toml:"max_spacing_variance"`
	FormalityRange         [2]float64 `json:"formality_range" toml:"formality_range"`
	ColorIntensityRange    [2]float64 `json:"color_intensity_range" toml:"color_intensity_range"`
}

func DefaultConstraints() Constraints {
	return Constraints{
		VisualWeightVariance:   0.3,
		SpacingDensityVariance: 0.2,
		FormalityRange:         [2]float64{0, 1},
		ColorIntensityRange:    [2]float64{0, 1},
	}
}

// CompatibilityScore is the pairwise result. Compatible iff Score >= 0.7.
type CompatibilityScore struct {
	Score       float64  `json:"score"`
	Issues      []Issue  `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

func (c CompatibilityScore) Compatible() bool { return c.Score >= validThreshold }

// PairScore preserves adjacency: entries are emitted in section order.
type PairScore struct {
	IDA   string  `json:"id_a"`
	IDB   string  `json:"id_b"`
	Score float64 `json:"score"`
}

// PageCoherence is the whole-page report. An empty page is trivially valid.
type PageCoherence struct {
	Score          float64     `json:"score"`
	Valid          bool        `json:"valid"`
	Issues         []Issue     `json:"issues"`
	PairwiseScores []PairScore `json:"pairwise_scores"`
}

// PageComponent pairs a component id with its style profile.
type PageComponent struct {
	ID      string
	Profile style.Profile
}

const validThreshold = 0.7

var suggestionText = map[IssueCategory]string{
	CategoryVisualWeight:   "Reduce decorative weight on the heavier component (fewer shadows, rings, and gradients) or add subtle depth to the lighter one",
	CategorySpacingDensity: "Align padding and gap scales so adjacent sections breathe at the same rate",
	CategoryTypography:     "Use adjacent typography scales; a large display next to small body text reads as two designs",
	CategoryFormality:      "Keep the palette within the pattern's formality range; swap vivid accents for neutral tones or vice versa",
	CategoryColorIntensity: "Bring color intensity inside the pattern's range by muting or saturating accent hues",
}

// Checker evaluates compatibility under a set of default constraints.
type Checker struct {
	defaults Constraints
}

func NewChecker() *Checker {
	return &Checker{defaults: DefaultConstraints()}
}

func NewCheckerWithConstraints(c Constraints) *Checker {
	return &Checker{defaults: c}
}

// CheckCompatibility scores two profiles under the checker's defaults.
func (ch *Checker) CheckCompatibility(a, b style.Profile) CompatibilityScore {
	return ch.CheckCompatibilityWithConstraints(a, b, ch.defaults)
}

// CheckCompatibilityWithConstraints scores two profiles. The result is
// symmetric in a and b.
func (ch *Checker) CheckCompatibilityWithConstraints(a, b style.Profile, c Constraints) CompatibilityScore {
	score := 1.0
	var issues []Issue

	if diff := math.Abs(a.VisualWeight - b.VisualWeight); diff > c.VisualWeightVariance {
		severity := gradedSeverity(diff, c.VisualWeightVariance)
		score -= 0.25 * severity
		issues = append(issues, Issue{
			Category: CategoryVisualWeight,
			Message:  "Visual weight difference exceeds the pattern's variance limit",
			Severity: severity,
		})
	}

	if diff := math.Abs(a.SpacingDensity - b.SpacingDensity); diff > c.SpacingDensityVariance {
		severity := gradedSeverity(diff, c.SpacingDensityVariance)
		score -= 0.20 * severity
		issues = append(issues, Issue{
			Category: CategorySpacingDensity,
			Message:  "Spacing density difference exceeds the pattern's variance limit",
			Severity: severity,
		})
	}

	if a.TypographyScale != b.TypographyScale {
		score -= 0.10
		issues = append(issues, Issue{
			Category: CategoryTypography,
			Message:  "Typography scales differ between components",
			Severity: 0.3,
		})
	}

	if outsideRange(a.Formality, c.FormalityRange) || outsideRange(b.Formality, c.FormalityRange) {
		score -= 0.15
		issues = append(issues, Issue{
			Category: CategoryFormality,
			Message:  "Formality falls outside the pattern's allowed range",
			Severity: 0.4,
		})
	}

	if outsideRange(a.ColorIntensity, c.ColorIntensityRange) || outsideRange(b.ColorIntensity, c.ColorIntensityRange) {
		score -= 0.10
		issues = append(issues, Issue{
			Category: CategoryColorIntensity,
			Message:  "Color intensity falls outside the pattern's allowed range",
			Severity: 0.3,
		})
	}

	return CompatibilityScore{
		Score:       clamp01(score),
		Issues:      issues,
		Suggestions: suggestionsFor(issues),
	}
}

// CheckPageCoherence scores an ordered page under the checker's defaults.
func (ch *Checker) CheckPageCoherence(components []PageComponent) PageCoherence {
	return ch.CheckPageCoherenceWithConstraints(components, ch.defaults)
}

// CheckPageCoherenceWithConstraints scores an ordered page. Zero- and
// one-element pages are valid by construction; a single component only has
// its formality range checked. No variance check applies below two entries.
func (ch *Checker) CheckPageCoherenceWithConstraints(components []PageComponent, c Constraints) PageCoherence {
	if len(components) == 0 {
		return PageCoherence{Score: 1.0, Valid: true}
	}

	if len(components) == 1 {
		score := 1.0
		var issues []Issue
		if outsideRange(components[0].Profile.Formality, c.FormalityRange) {
			score -= 0.15
			issues = append(issues, Issue{
				Category: CategoryFormality,
				Message:  "Formality falls outside the pattern's allowed range",
				Severity: 0.4,
			})
		}
		score = clamp01(score)
		return PageCoherence{Score: score, Valid: score >= validThreshold, Issues: issues}
	}

	score := 1.0
	var issues []Issue
	pairwise := make([]PairScore, 0, len(components)-1)

	for i := 0; i+1 < len(components); i++ {
		a, b := components[i], components[i+1]
		pair := ch.CheckCompatibilityWithConstraints(a.Profile, b.Profile, c)
		score *= math.Sqrt(pair.Score)
		pairwise = append(pairwise, PairScore{IDA: a.ID, IDB: b.ID, Score: pair.Score})
		issues = append(issues, pair.Issues...)
	}

	weights := make([]float64, len(components))
	spacings := make([]float64, len(components))
	for i, comp := range components {
		weights[i] = comp.Profile.VisualWeight
		spacings[i] = comp.Profile.SpacingDensity
	}

	if stdDev(weights) > c.VisualWeightVariance {
		score -= 0.15
		issues = append(issues, Issue{
			Category: CategoryVisualWeight,
			Message:  "Visual weight varies too much across the page",
			Severity: 0.5,
		})
	}
	if stdDev(spacings) > c.SpacingDensityVariance {
		score -= 0.10
		issues = append(issues, Issue{
			Category: CategorySpacingDensity,
			Message:  "Spacing density varies too much across the page",
			Severity: 0.4,
		})
	}

	score = clamp01(score)
	return PageCoherence{
		Score:          score,
		Valid:          score >= validThreshold,
		Issues:         issues,
		PairwiseScores: pairwise,
	}
}

// gradedSeverity scales how far past the limit a difference lands, in [0,1].
func gradedSeverity(diff, limit float64) float64 {
	if limit >= 1 {
		return 1
	}
	return clamp01((diff - limit) / (1 - limit))
}

func outsideRange(v float64, r [2]float64) bool {
	return v < r[0] || v > r[1]
}

func suggestionsFor(issues []Issue) []string {
	seen := make(map[string]bool)
	var out []string
	for _, issue := range issues {
		text, ok := suggestionText[issue.Category]
		if !ok || seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, text)
	}
	sort.Strings(out)
	return out
}

// stdDev is the population standard deviation; n <= 1 yields 0.
func stdDev(values []float64) float64 {
	n := float64(len(values))
	if n <= 1 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= n
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / n)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
