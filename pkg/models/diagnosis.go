package models

import "fmt"

// Severity grades how advanced the detected condition is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SecondaryLanguages lists the language codes for which every diagnosis
// record carries localized variant fields, populated or not. The fixed
// set keeps the record schema identical regardless of which language a
// caller requested.
var SecondaryLanguages = []string{"hi", "ta", "te", "mr"}

// LocalizedText holds the translated variant of the diagnosis text
// fields for a single language.
type LocalizedText struct {
	DiseaseName    string   `json:"disease_name"`
	CropIdentified string   `json:"crop_identified"`
	Description    string   `json:"description"`
	Symptoms       []string `json:"symptoms"`
	TreatmentSteps []string `json:"treatment_steps"`
	OrganicOptions []string `json:"organic_options"`
	PreventionTips []string `json:"prevention_tips"`
}

// AnalysisDetails is the auxiliary diagnostics block attached to records
// produced by the local pipeline. Ratios are rounded for presentation.
type AnalysisDetails struct {
	GreenRatio    float64 `json:"green_ratio"`
	BrownRatio    float64 `json:"brown_ratio"`
	YellowRatio   float64 `json:"yellow_ratio"`
	DominantIssue Issue   `json:"dominant_issue"`
}

// DiagnosisRecord is the canonical diagnosis shape produced by both the
// local color pipeline and the narrative parser, so callers can consume
// either source uniformly.
type DiagnosisRecord struct {
	ID             string   `json:"id,omitempty"`
	DiseaseName    string   `json:"disease_name"`
	CropIdentified string   `json:"crop_identified"`
	Confidence     float64  `json:"confidence"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	Symptoms       []string `json:"symptoms"`
	TreatmentSteps []string `json:"treatment_steps"`
	OrganicOptions []string `json:"organic_options"`
	PreventionTips []string `json:"prevention_tips"`
	IsHealthy      bool     `json:"is_healthy"`
	DiseaseRegions []Region `json:"disease_regions"`

	Details *AnalysisDetails `json:"analysis_details,omitempty"`

	// Localized always contains an entry per SecondaryLanguages code.
	Localized map[string]LocalizedText `json:"localized"`
}

// NewDiagnosisRecord returns a schema-complete record: list fields
// non-nil and a localized entry for every secondary language.
func NewDiagnosisRecord() DiagnosisRecord {
	rec := DiagnosisRecord{
		Symptoms:       []string{},
		TreatmentSteps: []string{},
		OrganicOptions: []string{},
		PreventionTips: []string{},
		DiseaseRegions: []Region{},
		Localized:      make(map[string]LocalizedText, len(SecondaryLanguages)),
	}
	for _, lang := range SecondaryLanguages {
		rec.Localized[lang] = LocalizedText{
			Symptoms:       []string{},
			TreatmentSteps: []string{},
			OrganicOptions: []string{},
			PreventionTips: []string{},
		}
	}
	return rec
}

// Validate checks the cross-field invariants of the record.
func (r *DiagnosisRecord) Validate() error {
	if r.Confidence < 0 || r.Confidence > 100 {
		return fmt.Errorf("confidence %.2f outside [0,100]", r.Confidence)
	}
	switch r.Severity {
	case SeverityLow, SeverityMedium, SeverityHigh:
	default:
		return fmt.Errorf("unknown severity %q", r.Severity)
	}
	if r.IsHealthy {
		if r.Severity != SeverityLow {
			return fmt.Errorf("healthy record must have low severity, got %q", r.Severity)
		}
		if len(r.DiseaseRegions) > 0 {
			return fmt.Errorf("healthy record carries %d disease regions", len(r.DiseaseRegions))
		}
	}
	for _, reg := range r.DiseaseRegions {
		if reg.Confidence < 0 || reg.Confidence > 95 {
			return fmt.Errorf("region confidence %.2f outside [0,95]", reg.Confidence)
		}
		if reg.W <= 0 || reg.H <= 0 {
			return fmt.Errorf("region has non-positive extent %dx%d", reg.W, reg.H)
		}
	}
	for _, lang := range SecondaryLanguages {
		if _, ok := r.Localized[lang]; !ok {
			return fmt.Errorf("missing localized entry for %q", lang)
		}
	}
	return nil
}
