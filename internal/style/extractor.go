package style

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	classAttrRe = regexp.MustCompile(`(?:className|class)\s*=\s*["']([^"']*)["']`)
	helperRe    = regexp.MustCompile(`\b(?:clsx|cn)\(([^)]*)\)`)
	stringLitRe = regexp.MustCompile(`["']([^"']*)["']`)
	templateRe  = regexp.MustCompile("`([^`]*)`")
)

// utilityPrefixes is the closed vocabulary of recognized utility-class
// prefixes. Tokens outside it contribute nothing; additions are deliberate.
var utilityPrefixes = []string{
	"bg-", "text-",
	"p-", "px-", "py-", "pt-", "pb-", "pl-", "pr-",
	"m-", "mx-", "my-", "mt-", "mb-", "ml-", "mr-",
	"gap-", "space-",
	"w-", "h-", "min-", "max-",
	"flex", "grid",
	"rounded", "shadow", "border", "ring",
	"font-", "leading-", "tracking-", "opacity-", "z-",
	"inset-", "top-", "right-", "bottom-", "left-",
	"gradient", "from-", "to-", "via-",
	"backdrop-",
}

var utilityLiterals = map[string]bool{
	"hidden":   true,
	"block":    true,
	"inline":   true,
	"relative": true,
	"absolute": true,
	"fixed":    true,
	"sticky":   true,
}

var formalHues = map[string]bool{
	"gray": true, "slate": true, "zinc": true,
	"neutral": true, "stone": true, "black": true, "white": true,
}

var casualHues = map[string]bool{
	"red": true, "orange": true, "amber": true, "yellow": true,
	"lime": true, "green": true, "emerald": true, "teal": true,
	"cyan": true, "sky": true, "blue": true, "indigo": true,
	"violet": true, "purple": true, "fuchsia": true, "pink": true,
	"rose": true,
}

// textSizeRank maps text-size suffixes to an ordinal, xs through 9xl.
var textSizeRank = map[string]int{
	"xs": 1, "sm": 2, "base": 3, "lg": 4, "xl": 5,
	"2xl": 6, "3xl": 7, "4xl": 8, "5xl": 9,
	"6xl": 10, "7xl": 11, "8xl": 12, "9xl": 13,
}

var shadowWeights = map[string]float64{
	"shadow-sm":  0.5,
	"shadow":     1.0,
	"shadow-md":  1.5,
	"shadow-lg":  2.0,
	"shadow-xl":  2.5,
	"shadow-2xl": 3.0,
}

var ringWeights = map[string]float64{
	"ring-1": 0.5,
	"ring":   1.0,
	"ring-2": 1.0,
	"ring-4": 1.5,
	"ring-8": 2.0,
}

var roundedWeights = map[string]float64{
	"rounded-sm":   0.1,
	"rounded":      0.2,
	"rounded-md":   0.3,
	"rounded-lg":   0.4,
	"rounded-xl":   0.5,
	"rounded-2xl":  0.6,
	"rounded-3xl":  0.7,
	"rounded-full": 0.8,
}

// special spacing suffixes that do not parse as plain numbers
var spacingSpecials = map[string]float64{
	"px":  0.25,
	"0.5": 0.125,
	"1.5": 0.375,
	"2.5": 0.625,
	"3.5": 0.875,
}

// Longest prefixes listed first so that px-4 never matches p-.
var spacingPrefixes = []string{
	"px-", "py-", "pt-", "pb-", "pl-", "pr-", "p-",
	"mx-", "my-", "mt-", "mb-", "ml-", "mr-", "m-",
	"gap-x-", "gap-y-", "gap-",
	"space-x-", "space-y-",
}

// Extract computes the style profile of a source string.
func Extract(source string) Profile {
	tokens := extractTokens(source)
	if len(tokens) == 0 {
		return DefaultProfile()
	}

	return Profile{
		VisualWeight:    visualWeight(tokens),
		Formality:       formality(tokens),
		ColorIntensity:  colorIntensity(tokens),
		SpacingDensity:  spacingDensity(tokens),
		TypographyScale: typographyScale(tokens),
	}
}

// extractTokens collects utility tokens from class attributes, clsx/cn
// helper calls, and template literals, in that order. Duplicates are kept;
// every axis works on raw occurrence counts.
func extractTokens(source string) []string {
	var tokens []string

	for _, m := range classAttrRe.FindAllStringSubmatch(source, -1) {
		tokens = append(tokens, strings.Fields(m[1])...)
	}

	for _, m := range helperRe.FindAllStringSubmatch(source, -1) {
		for _, lit := range stringLitRe.FindAllStringSubmatch(m[1], -1) {
			tokens = append(tokens, strings.Fields(lit[1])...)
		}
	}

	for _, m := range templateRe.FindAllStringSubmatch(source, -1) {
		for _, word := range strings.Fields(m[1]) {
			if looksLikeUtility(word) {
				tokens = append(tokens, word)
			}
		}
	}

	return tokens
}

// stripVariant drops the responsive/state variant chain, keeping the final
// utility: "md:hover:bg-red-500" becomes "bg-red-500".
func stripVariant(token string) string {
	if i := strings.LastIndex(token, ":"); i >= 0 {
		return token[i+1:]
	}
	return token
}

func looksLikeUtility(word string) bool {
	word = stripVariant(word)
	if utilityLiterals[word] {
		return true
	}
	for _, prefix := range utilityPrefixes {
		if strings.HasPrefix(word, prefix) {
			return true
		}
	}
	return false
}

// visualWeight sums decorative utility scores. The checks are independent
// and unrecognized shadow/ring/rounded suffixes still score their family's
// default, so color-bearing forms like shadow-indigo-500/40 count.
func visualWeight(tokens []string) float64 {
	sum := 0.0
	for _, tok := range tokens {
		tok = stripVariant(tok)

		if strings.HasPrefix(tok, "shadow") {
			if w, ok := shadowWeights[tok]; ok {
				sum += w
			} else {
				sum += 0.5
			}
		}

		if strings.HasPrefix(tok, "bg-gradient") || strings.HasPrefix(tok, "from-") {
			sum += 2.0
		}

		if strings.HasPrefix(tok, "ring") && tok != "ring-0" {
			if w, ok := ringWeights[tok]; ok {
				sum += w
			} else {
				sum += 0.5
			}
		}

		if strings.HasPrefix(tok, "border") && !strings.Contains(tok, "transparent") {
			switch {
			case tok == "border" || strings.HasPrefix(tok, "border-x") || strings.HasPrefix(tok, "border-y"):
				sum += 0.5
			case strings.HasPrefix(tok, "border-2") || strings.HasPrefix(tok, "border-4"):
				sum += 1.0
			}
		}

		if strings.HasPrefix(tok, "rounded") {
			if w, ok := roundedWeights[tok]; ok {
				sum += w
			} else {
				sum += 0.2
			}
		}

		if strings.HasPrefix(tok, "backdrop-blur") {
			sum += 1.0
		}
	}
	return clamp01(sum / 15.0)
}

// hueOf pulls the color hue out of a color-bearing utility, or "" when the
// token names no hue.
func hueOf(tok string) string {
	for _, prefix := range []string{"bg-", "text-", "border-", "ring-", "from-", "to-", "via-"} {
		if !strings.HasPrefix(tok, prefix) {
			continue
		}
		rest := strings.TrimPrefix(tok, prefix)
		rest, _, _ = strings.Cut(rest, "/")
		hue, _, _ := strings.Cut(rest, "-")
		if formalHues[hue] || casualHues[hue] {
			return hue
		}
	}
	return ""
}

// shadeOf returns the numeric shade of a color utility, or -1.
func shadeOf(tok string) int {
	parts := strings.Split(tok, "-")
	if len(parts) < 3 {
		return -1
	}
	last := parts[len(parts)-1]
	// Opacity modifiers like bg-blue-500/50 trail the shade.
	last, _, _ = strings.Cut(last, "/")
	n, err := strconv.Atoi(last)
	if err != nil {
		return -1
	}
	return n
}

func formality(tokens []string) float64 {
	formal, casual := 0, 0
	for _, tok := range tokens {
		switch hue := hueOf(stripVariant(tok)); {
		case hue == "":
		case formalHues[hue]:
			formal++
		default:
			casual++
		}
	}
	if formal+casual == 0 {
		return 0.5
	}
	return float64(formal) / float64(formal+casual)
}

func colorIntensity(tokens []string) float64 {
	vivid := make(map[string]bool)
	midShades := 0
	for _, tok := range tokens {
		tok = stripVariant(tok)
		hue := hueOf(tok)
		if hue == "" {
			continue
		}
		if casualHues[hue] {
			vivid[hue] = true
		}
		if shade := shadeOf(tok); shade >= 400 && shade <= 600 {
			midShades++
		}
	}
	return 0.6*math.Min(1, float64(len(vivid))/5.0) + 0.4*math.Min(1, float64(midShades)/10.0)
}

func spacingDensity(tokens []string) float64 {
	var values []float64
	for _, tok := range tokens {
		tok = stripVariant(tok)
		if v, ok := spacingValue(tok); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return math.Min(1, sum/float64(len(values))/16.0)
}

func spacingValue(tok string) (float64, bool) {
	suffix := ""
	matched := false
	for _, prefix := range spacingPrefixes {
		if strings.HasPrefix(tok, prefix) {
			suffix = strings.TrimPrefix(tok, prefix)
			matched = true
			break
		}
	}
	if !matched || suffix == "" {
		return 0, false
	}
	if v, ok := spacingSpecials[suffix]; ok {
		return v, true
	}
	if num, den, ok := strings.Cut(suffix, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 == nil && err2 == nil && d != 0 {
			return 4 * n / d, true
		}
		return 0, false
	}
	v, err := strconv.ParseFloat(suffix, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func typographyScale(tokens []string) TypographyScale {
	maxRank := 0
	for _, tok := range tokens {
		tok = stripVariant(tok)
		if !strings.HasPrefix(tok, "text-") {
			continue
		}
		if rank, ok := textSizeRank[strings.TrimPrefix(tok, "text-")]; ok && rank > maxRank {
			maxRank = rank
		}
	}
	switch {
	case maxRank >= 7:
		return ScaleLarge
	case maxRank >= 4:
		return ScaleMedium
	default:
		return ScaleSmall
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
