package narrative

import (
	"regexp"
	"strings"

	"github.com/arbovm/levenshtein"
)

// knownCrops is scanned as whole words when contextual extraction fails,
// and used as the fuzzy-match reference set for near-miss spellings.
var knownCrops = []string{
	"Apple", "Tomato", "Cucumber", "Potato", "Onion", "Grape", "Orange",
	"Banana", "Lemon", "Mango", "Pepper", "Chilli", "Strawberry", "Corn",
	"Rice", "Wheat", "Soybean", "Pomegranate", "Guava", "Papaya",
	"Brinjal", "Eggplant", "Cabbage", "Cauliflower", "Rosemary", "Tulsi",
	"Neem", "Pea", "Peas",
}

// cropStoplist holds words the contextual pattern tends to capture that are
// never crop names.
var cropStoplist = map[string]struct{}{
	"fungal": {}, "bacterial": {}, "viral": {}, "disease": {},
	"infection": {}, "severe": {}, "common": {}, "issue": {},
	"problem": {}, "leaf": {}, "plant": {},
}

var (
	cropContextPattern = regexp.MustCompile(`(?i)(?:in|of|on|identified as|is a|occurs in|analysis of)\s+([a-zA-Z]{3,20})`)
	cropSuffixPattern  = regexp.MustCompile(`(?i)('s|s|es|leaf|leaves)$`)
)

var knownCropPatterns = buildKnownCropPatterns()

func buildKnownCropPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(knownCrops))
	for _, crop := range knownCrops {
		patterns[crop] = regexp.MustCompile(`(?i)\b` + strings.ToLower(crop) + `\b`)
	}
	return patterns
}

// normalizeCrop canonicalizes crop aliases to their table names.
func normalizeCrop(crop string) string {
	if strings.EqualFold(crop, "maize") {
		return "Corn"
	}
	return crop
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// extractCropName mines free text for a crop mention. Contextual phrases
// such as "analysis of tomato leaves" are tried first, then a whole-word
// scan of the known crop list, with a one-edit fuzzy pass to absorb typos.
func extractCropName(text string) (string, bool) {
	if match := cropContextPattern.FindStringSubmatch(text); match != nil {
		candidate := cropSuffixPattern.ReplaceAllString(capitalize(match[1]), "")
		lower := strings.ToLower(candidate)
		if len(candidate) >= 3 {
			if _, stop := cropStoplist[lower]; !stop {
				return normalizeCrop(candidate), true
			}
		}
		if crop, ok := fuzzyCrop(lower); ok {
			return crop, true
		}
	}

	for _, crop := range knownCrops {
		if knownCropPatterns[crop].MatchString(text) {
			return normalizeCrop(crop), true
		}
	}

	return "", false
}

// fuzzyCrop matches a candidate against the known crop list within one
// edit, catching spellings like "tomatto" or "potatoe".
func fuzzyCrop(candidate string) (string, bool) {
	if len(candidate) < 3 {
		return "", false
	}
	for _, crop := range knownCrops {
		if levenshtein.Distance(candidate, strings.ToLower(crop)) <= 1 {
			return normalizeCrop(crop), true
		}
	}
	return "", false
}
