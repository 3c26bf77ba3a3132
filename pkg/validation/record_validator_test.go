package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-plant-inspector/pkg/models"
)

func validRecord() models.DiagnosisRecord {
	rec := models.NewDiagnosisRecord()
	rec.DiseaseName = "Potato Late Blight"
	rec.CropIdentified = "Potato"
	rec.Confidence = 74.3
	rec.Severity = models.SeverityMedium
	rec.DiseaseRegions = []models.Region{{X: 5, Y: 5, W: 20, H: 10, Area: 200, Confidence: 80}}
	return rec
}

func codes(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Code
	}
	return out
}

func TestValidateCleanRecord(t *testing.T) {
	v := NewRecordValidator()
	assert.Empty(t, v.Validate(validRecord()))
}

func TestValidateReportsAllViolations(t *testing.T) {
	v := NewRecordValidator()

	rec := validRecord()
	rec.DiseaseName = ""
	rec.Confidence = 120
	rec.Severity = "catastrophic"

	issues := v.Validate(rec)
	got := codes(issues)
	assert.Contains(t, got, "empty_disease_name")
	assert.Contains(t, got, "confidence_range")
	assert.Contains(t, got, "invalid_severity")
	assert.Len(t, issues, 3)
}

func TestValidateHealthyInvariants(t *testing.T) {
	v := NewRecordValidator()

	rec := validRecord()
	rec.DiseaseName = "Potato Late Blight"
	rec.IsHealthy = true
	rec.Severity = models.SeverityHigh

	got := codes(v.Validate(rec))
	assert.Contains(t, got, "healthy_severity")
	assert.Contains(t, got, "healthy_regions")
	assert.Contains(t, got, "healthy_name")
}

func TestValidateHealthyAcceptsHealthyName(t *testing.T) {
	v := NewRecordValidator()

	rec := validRecord()
	rec.DiseaseName = "Healthy Potato"
	rec.IsHealthy = true
	rec.Severity = models.SeverityLow
	rec.DiseaseRegions = nil

	assert.Empty(t, v.Validate(rec))
}

func TestValidateRegionBounds(t *testing.T) {
	v := NewRecordValidator()

	rec := validRecord()
	rec.DiseaseRegions = []models.Region{
		{X: 0, Y: 0, W: 10, H: 10, Confidence: 97},
		{X: 0, Y: 0, W: 0, H: 5, Confidence: 50},
	}

	got := codes(v.Validate(rec))
	assert.Contains(t, got, "region_confidence")
	assert.Contains(t, got, "region_bounds")
}

func TestValidateMissingLocalized(t *testing.T) {
	v := NewRecordValidator()

	rec := validRecord()
	delete(rec.Localized, "ta")

	issues := v.Validate(rec)
	require.Len(t, issues, 1)
	assert.Equal(t, "missing_localized", issues[0].Code)
	assert.Contains(t, issues[0].Message, "ta")
}

func TestMessages(t *testing.T) {
	v := NewRecordValidator()
	msgs := v.Messages([]Issue{{Code: "a", Message: "b"}})
	assert.Equal(t, []string{"a: b"}, msgs)
}
