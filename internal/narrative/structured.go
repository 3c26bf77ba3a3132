package narrative

import (
	"encoding/json"
	"regexp"
	"strings"

	apperrors "go-plant-inspector/internal/errors"
	"go-plant-inspector/pkg/models"
)

// minTrustedConfidence is the floor below which a model-reported confidence
// is replaced with the default; models routinely self-report low numbers for
// answers that are otherwise usable.
const minTrustedConfidence = 80

var fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

type structuredPayload struct {
	CropIdentified string   `json:"crop_identified"`
	DiseaseName    string   `json:"disease_name"`
	Confidence     float64  `json:"confidence"`
	Severity       string   `json:"severity"`
	Description    string   `json:"description"`
	Symptoms       []string `json:"symptoms"`
	TreatmentSteps []string `json:"treatment_steps"`
	OrganicOptions []string `json:"organic_options"`
	PreventionTips []string `json:"prevention_tips"`
	IsHealthy      *bool    `json:"is_healthy"`
}

// ExtractStructured pulls a JSON object out of model output, either from a
// fenced ```json block or from the outermost brace pair, and maps it onto a
// diagnosis record. A parse error is returned when no usable JSON exists;
// callers fall back to the prose parser.
func ExtractStructured(raw string) (models.DiagnosisRecord, error) {
	payload, err := locateJSON(raw)
	if err != nil {
		return models.DiagnosisRecord{}, err
	}

	var parsed structuredPayload
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return models.DiagnosisRecord{}, apperrors.NewParseError("response JSON does not decode", err)
	}

	rec := models.NewDiagnosisRecord()
	if parsed.CropIdentified != "" {
		rec.CropIdentified = normalizeCrop(parsed.CropIdentified)
	} else {
		rec.CropIdentified = "Plant"
	}
	if parsed.DiseaseName != "" {
		rec.DiseaseName = parsed.DiseaseName
	} else {
		rec.DiseaseName = PlaceholderDiseaseName
	}

	rec.Confidence = parsed.Confidence
	if rec.Confidence < minTrustedConfidence {
		rec.Confidence = defaultConfidence
	}

	rec.Severity = models.Severity(strings.ToLower(parsed.Severity))
	if rec.Severity != models.SeverityLow && rec.Severity != models.SeverityMedium && rec.Severity != models.SeverityHigh {
		rec.Severity = models.SeverityMedium
	}

	rec.Description = parsed.Description
	if len(parsed.Symptoms) > 0 {
		rec.Symptoms = parsed.Symptoms
	}
	if len(parsed.TreatmentSteps) > 0 {
		rec.TreatmentSteps = parsed.TreatmentSteps
	}
	if len(parsed.OrganicOptions) > 0 {
		rec.OrganicOptions = parsed.OrganicOptions
	}
	if len(parsed.PreventionTips) > 0 {
		rec.PreventionTips = parsed.PreventionTips
	}

	if parsed.IsHealthy != nil {
		rec.IsHealthy = *parsed.IsHealthy
	} else {
		rec.IsHealthy = strings.Contains(strings.ToLower(rec.DiseaseName), "healthy")
	}
	if rec.IsHealthy {
		rec.Severity = models.SeverityLow
		rec.DiseaseRegions = []models.Region{}
	}

	return rec, nil
}

func locateJSON(raw string) (string, error) {
	if match := fencedJSONPattern.FindStringSubmatch(raw); match != nil {
		return match[1], nil
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", apperrors.NewParseError("no JSON object found in response", nil)
	}
	return raw[start : end+1], nil
}
