// Package narrative recovers a structured diagnosis record from the
// unstructured prose an upstream language model produces. Extraction is
// best-effort: the parser never fails, it degrades to a generic record.
package narrative

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"

	"go-plant-inspector/pkg/models"
)

// PlaceholderDiseaseName marks a record whose disease name never got
// extracted from the text.
const PlaceholderDiseaseName = "AI Specialist Insight"

const defaultConfidence = 99

var healthyKeywords = []string{"healthy", "normal", "no disease", "clear", "good health", "thriving"}

var severityKeywords = []string{"severe", "deadly", "critical", "kill", "destroy"}

var healthyTranslations = map[string]string{
	"hi": "स्वस्थ",
	"ta": "ஆரோக்கியமானது",
	"te": "ఆరోగ్యకరమైనది",
	"mr": "निरोगी",
}

// Parser splits model prose into headed sections and applies field rules.
type Parser struct {
	rules []sectionRule
}

// NewParser creates a parser with the default section rules.
func NewParser() *Parser {
	return &Parser{rules: sectionRules()}
}

// Parse recovers a diagnosis record from raw text. language is the BCP-47
// code the narrative was requested in; empty means detect from the text.
func (p *Parser) Parse(raw, language string) models.DiagnosisRecord {
	rec := models.NewDiagnosisRecord()
	rec.DiseaseName = PlaceholderDiseaseName
	rec.CropIdentified = "Plant"
	rec.Confidence = defaultConfidence
	rec.Severity = models.SeverityMedium

	st := &parseState{}
	p.applySections(&rec, raw, st)

	if !st.cropFromHeader {
		if crop, ok := extractCropName(raw); ok {
			rec.CropIdentified = crop
		}
	}

	p.applyHealthState(&rec, raw, st)
	p.localize(&rec, raw, language)
	return rec
}

// applySections splits the text on recognized headings and dispatches each
// section body to the first rule matching its heading. Text before the first
// heading, or the whole text when no heading matches, becomes the
// description.
func (p *Parser) applySections(rec *models.DiagnosisRecord, raw string, st *parseState) {
	// A leading newline lets a heading at the very start of the text match.
	text := "\n" + raw

	matches := headerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if desc := strings.TrimSpace(raw); desc != "" {
			rec.Description = desc
		}
		return
	}

	if intro := strings.TrimSpace(text[:matches[0][0]]); intro != "" {
		rec.Description = intro
	}

	for i, m := range matches {
		header := strings.ToLower(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := text[m[1]:end]
		for _, rule := range p.rules {
			if rule.matches(header) {
				rule.apply(rec, content, st)
				break
			}
		}
	}
}

// applyHealthState reconciles the extracted disease name with healthy and
// severity cues in the full text. A healthy cue only overrides when no
// specific disease name was extracted.
func (p *Parser) applyHealthState(rec *models.DiagnosisRecord, raw string, st *parseState) {
	lower := strings.ToLower(raw)
	healthyMention := lo.SomeBy(healthyKeywords, func(k string) bool {
		return strings.Contains(lower, k)
	})
	noDisease := !st.diseaseFromHeader ||
		strings.Contains(strings.ToLower(rec.DiseaseName), "none")

	switch {
	case (strings.HasPrefix(strings.TrimSpace(lower), "healthy") || healthyMention) && noDisease:
		rec.DiseaseName = "Healthy"
		rec.Severity = models.SeverityLow
		rec.IsHealthy = true
		rec.DiseaseRegions = []models.Region{}
		for lang, name := range healthyTranslations {
			loc := rec.Localized[lang]
			loc.DiseaseName = name
			rec.Localized[lang] = loc
		}
	case !st.diseaseFromHeader:
		if lo.SomeBy(severityKeywords, func(k string) bool { return strings.Contains(lower, k) }) {
			rec.Severity = models.SeverityHigh
		}
	default:
		if strings.Contains(strings.ToLower(rec.DiseaseName), "healthy") {
			rec.Severity = models.SeverityLow
			rec.IsHealthy = true
		}
	}
}

// localize mirrors the extracted fields into the localized variant matching
// the narrative's language, so text written in a secondary language is not
// lost under the English keys alone.
func (p *Parser) localize(rec *models.DiagnosisRecord, raw, language string) {
	lang := language
	if lang == "" {
		info := whatlanggo.Detect(raw)
		lang = info.Lang.Iso6391()
	}
	if lang == "" || lang == "en" || !lo.Contains(models.SecondaryLanguages, lang) {
		return
	}

	loc := rec.Localized[lang]
	if loc.DiseaseName == "" {
		loc.DiseaseName = rec.DiseaseName
	}
	loc.Description = rec.Description
	loc.Symptoms = append([]string{}, rec.Symptoms...)
	loc.TreatmentSteps = append([]string{}, rec.TreatmentSteps...)
	loc.OrganicOptions = append([]string{}, rec.OrganicOptions...)
	loc.PreventionTips = append([]string{}, rec.PreventionTips...)
	rec.Localized[lang] = loc
}
