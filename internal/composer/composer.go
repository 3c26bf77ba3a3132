// Package composer merges crop identification with pixel analysis into a
// schema-complete diagnosis record.
package composer

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"go-plant-inspector/internal/knowledge"
	"go-plant-inspector/pkg/models"
)

// Severity boundaries on the health score.
const (
	highSeverityScore   = 0.6
	mediumSeverityScore = 0.35
)

// DiagnosisComposer builds diagnosis records from analysis output and the
// disease knowledge table injected at construction.
type DiagnosisComposer struct {
	table *knowledge.DiseaseTable
}

// New creates a composer over the given disease table.
func New(table *knowledge.DiseaseTable) *DiagnosisComposer {
	return &DiagnosisComposer{table: table}
}

// Compose produces a complete record. A healthy analysis yields the healthy
// branch regardless of table contents; otherwise the table entry resolved for
// the crop supplies the pathology text, with the generic entry's name
// rewritten from the dominant issue.
func (c *DiagnosisComposer) Compose(crop models.CropIdentification, analysis models.AnalysisResult) models.DiagnosisRecord {
	rec := models.NewDiagnosisRecord()
	rec.CropIdentified = crop.Name
	rec.Details = &models.AnalysisDetails{
		GreenRatio:    round3(analysis.GreenRatio),
		BrownRatio:    round3(analysis.BrownRatio),
		YellowRatio:   round3(analysis.YellowRatio),
		DominantIssue: analysis.DominantIssue,
	}

	if analysis.IsHealthy {
		c.composeHealthy(&rec, crop)
		return rec
	}
	c.composeDisease(&rec, crop, analysis)
	return rec
}

func (c *DiagnosisComposer) composeHealthy(rec *models.DiagnosisRecord, crop models.CropIdentification) {
	rec.DiseaseName = "Healthy " + crop.Name
	rec.Confidence = math.Min(99.9, round1(crop.Confidence+15))
	rec.Severity = models.SeverityLow
	rec.Description = fmt.Sprintf("This %s appears healthy with good color and no visible signs of disease.", crop.Name)
	rec.Symptoms = []string{}
	rec.TreatmentSteps = []string{"Continue regular care", "Monitor weekly for any changes"}
	rec.OrganicOptions = []string{"No treatment needed"}
	rec.PreventionTips = []string{"Maintain proper watering", "Ensure good drainage"}
	rec.IsHealthy = true
	rec.DiseaseRegions = []models.Region{}

	rec.Localized["hi"] = models.LocalizedText{
		DiseaseName:    "स्वस्थ " + crop.Name,
		Description:    "यह " + crop.Name + " पूरी तरह से स्वस्थ दिखाई दे रहा है।",
		Symptoms:       []string{},
		TreatmentSteps: []string{"सामान्य देखभाल जारी रखें", "साप्ताहिक निरीक्षण करें"},
		OrganicOptions: []string{"कोई उपचार आवश्यक नहीं"},
		PreventionTips: []string{"उचित सिंचाई बनाए रखें", "अच्छी जल निकासी सुनिश्चित करें"},
	}
}

func (c *DiagnosisComposer) composeDisease(rec *models.DiagnosisRecord, crop models.CropIdentification, analysis models.AnalysisResult) {
	entry, key := c.table.Resolve(crop.Name)

	name := lo.Ternary(entry.DiseaseName != "", entry.DiseaseName, crop.Name+" Anomaly")
	if key == knowledge.GeneralPathologyKey {
		switch analysis.DominantIssue {
		case models.IssueNutrient:
			name = crop.Name + " Nutrient Deficiency"
		case models.IssueNecrosis:
			name = crop.Name + " Severe Damage"
		}
	}

	rec.DiseaseName = name
	rec.Confidence = round1(crop.Confidence)
	rec.Severity = severityForScore(analysis.HealthScore)
	rec.Description = lo.Ternary(entry.Description != "", entry.Description, "Potential pathology detected.")
	rec.Symptoms = lo.Ternary(len(entry.Symptoms) > 0, entry.Symptoms, []string{"Surface abnormality detected"})
	rec.TreatmentSteps = orEmpty(entry.TreatmentSteps)
	rec.OrganicOptions = orEmpty(entry.OrganicOptions)
	rec.PreventionTips = orEmpty(entry.PreventionTips)
	rec.IsHealthy = false
	rec.DiseaseRegions = append([]models.Region{}, analysis.DiseaseRegions...)

	for lang, loc := range entry.Localized {
		rec.Localized[lang] = models.LocalizedText{
			DiseaseName:    loc.DiseaseName,
			Description:    loc.Description,
			Symptoms:       orEmpty(loc.Symptoms),
			TreatmentSteps: orEmpty(loc.TreatmentSteps),
			OrganicOptions: orEmpty(loc.OrganicOptions),
			PreventionTips: orEmpty(loc.PreventionTips),
		}
	}
}

func severityForScore(score float64) models.Severity {
	switch {
	case score > highSeverityScore:
		return models.SeverityHigh
	case score > mediumSeverityScore:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
