package narrative

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"go-plant-inspector/pkg/models"
)

// headerPattern recognizes advisory section headings as emitted by language
// models: optional list numbering, optional markdown bold, optional colon.
var headerPattern = regexp.MustCompile(`(?i)\n\s*[\d.]*\s?\*{0,2}(how it was formed|how we can prevent|how we can recover|symptoms|crop identified|plant identified|product|disease name)\*{0,2}:?`)

// leadingNoise strips list markers and numbering from the front of a line.
var leadingNoise = regexp.MustCompile(`^[\s\d.\-*•]+`)

// parseState tracks what the header pass managed to extract so the
// post-processing steps know which fallbacks still apply.
type parseState struct {
	cropFromHeader    bool
	diseaseFromHeader bool
}

// sectionRule binds a heading family to a field setter. Rules are evaluated
// in order against the lowercased heading text; the first match applies.
type sectionRule struct {
	matches func(header string) bool
	apply   func(rec *models.DiagnosisRecord, content string, st *parseState)
}

func headerIs(keys ...string) func(string) bool {
	return func(header string) bool {
		for _, k := range keys {
			if strings.Contains(header, k) {
				return true
			}
		}
		return false
	}
}

func sectionRules() []sectionRule {
	return []sectionRule{
		{
			matches: headerIs("how it was formed"),
			apply: func(rec *models.DiagnosisRecord, content string, _ *parseState) {
				if text := strings.TrimSpace(content); text != "" {
					rec.Description = text
				}
			},
		},
		{
			matches: headerIs("how we can prevent"),
			apply: func(rec *models.DiagnosisRecord, content string, _ *parseState) {
				if lines := cleanLines(content); len(lines) > 0 {
					rec.PreventionTips = lines
				}
			},
		},
		{
			matches: headerIs("how we can recover"),
			apply: func(rec *models.DiagnosisRecord, content string, _ *parseState) {
				if lines := cleanLines(content); len(lines) > 0 {
					rec.TreatmentSteps = lines
				}
			},
		},
		{
			matches: headerIs("symptoms"),
			apply: func(rec *models.DiagnosisRecord, content string, _ *parseState) {
				if lines := cleanLines(content); len(lines) > 0 {
					rec.Symptoms = lines
				}
			},
		},
		{
			matches: headerIs("crop identified", "plant identified", "product"),
			apply: func(rec *models.DiagnosisRecord, content string, st *parseState) {
				crop := cleanLine(firstLine(content))
				if len(crop) > 2 {
					rec.CropIdentified = normalizeCrop(crop)
					st.cropFromHeader = true
				}
			},
		},
		{
			matches: headerIs("disease name"),
			apply: func(rec *models.DiagnosisRecord, content string, st *parseState) {
				name := cleanLine(firstLine(content))
				if name != "" {
					rec.DiseaseName = name
					st.diseaseFromHeader = true
				}
			},
		},
	}
}

func firstLine(content string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	return line
}

func cleanLine(line string) string {
	return strings.TrimSpace(leadingNoise.ReplaceAllString(line, ""))
}

func cleanLines(content string) []string {
	return lo.FilterMap(strings.Split(content, "\n"), func(line string, _ int) (string, bool) {
		cleaned := cleanLine(line)
		return cleaned, cleaned != ""
	})
}
