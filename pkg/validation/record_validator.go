// Package validation checks diagnosis records against the invariants the
// rest of the system relies on, reporting structured issues rather than
// failing on the first violation.
package validation

import (
	"fmt"
	"strings"

	"go-plant-inspector/pkg/models"
)

// Issue is one invariant violation. Code is stable across releases and
// suitable for alert routing; Message is for humans.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RecordValidator struct{}

func NewRecordValidator() *RecordValidator {
	return &RecordValidator{}
}

// Validate returns every violated invariant; an empty slice means the
// record is consistent.
func (v *RecordValidator) Validate(rec models.DiagnosisRecord) []Issue {
	var issues []Issue

	if rec.DiseaseName == "" {
		issues = append(issues, Issue{Code: "empty_disease_name", Message: "disease_name is empty"})
	}
	if rec.CropIdentified == "" {
		issues = append(issues, Issue{Code: "empty_crop", Message: "crop_identified is empty"})
	}
	if rec.Confidence < 0 || rec.Confidence > 100 {
		issues = append(issues, Issue{
			Code:    "confidence_range",
			Message: fmt.Sprintf("confidence %.1f outside [0, 100]", rec.Confidence),
		})
	}

	switch rec.Severity {
	case models.SeverityLow, models.SeverityMedium, models.SeverityHigh:
	default:
		issues = append(issues, Issue{
			Code:    "invalid_severity",
			Message: fmt.Sprintf("severity %q is not low, medium or high", rec.Severity),
		})
	}

	if rec.IsHealthy {
		if rec.Severity != models.SeverityLow {
			issues = append(issues, Issue{Code: "healthy_severity", Message: "healthy record must have low severity"})
		}
		if len(rec.DiseaseRegions) > 0 {
			issues = append(issues, Issue{Code: "healthy_regions", Message: "healthy record must have no disease regions"})
		}
		if !strings.Contains(strings.ToLower(rec.DiseaseName), "healthy") && !strings.Contains(rec.DiseaseName, "स्वस्थ") {
			issues = append(issues, Issue{Code: "healthy_name", Message: "healthy record has a disease-style name"})
		}
	}

	for i, region := range rec.DiseaseRegions {
		if region.Confidence < 0 || region.Confidence > 95 {
			issues = append(issues, Issue{
				Code:    "region_confidence",
				Message: fmt.Sprintf("region %d confidence %.1f outside [0, 95]", i, region.Confidence),
			})
		}
		if region.W <= 0 || region.H <= 0 {
			issues = append(issues, Issue{
				Code:    "region_bounds",
				Message: fmt.Sprintf("region %d has non-positive dimensions", i),
			})
		}
	}

	for _, lang := range models.SecondaryLanguages {
		if _, ok := rec.Localized[lang]; !ok {
			issues = append(issues, Issue{
				Code:    "missing_localized",
				Message: fmt.Sprintf("localized variant for %q is missing", lang),
			})
		}
	}

	return issues
}

// Messages flattens issues for log output.
func (v *RecordValidator) Messages(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Code + ": " + issue.Message
	}
	return out
}
