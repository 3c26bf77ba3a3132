package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiagnosisRecordSchemaComplete(t *testing.T) {
	rec := NewDiagnosisRecord()

	assert.NotNil(t, rec.Symptoms)
	assert.NotNil(t, rec.TreatmentSteps)
	assert.NotNil(t, rec.OrganicOptions)
	assert.NotNil(t, rec.PreventionTips)
	assert.NotNil(t, rec.DiseaseRegions)

	for _, lang := range SecondaryLanguages {
		loc, ok := rec.Localized[lang]
		require.True(t, ok, "missing %s", lang)
		assert.NotNil(t, loc.Symptoms)
		assert.NotNil(t, loc.TreatmentSteps)
	}
}

func TestDiagnosisRecordJSONListsNeverNull(t *testing.T) {
	rec := NewDiagnosisRecord()
	rec.Severity = SeverityLow

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"symptoms":null`)
	assert.NotContains(t, string(data), `"disease_regions":null`)
	assert.Contains(t, string(data), `"localized"`)
}

func TestDiagnosisRecordValidate(t *testing.T) {
	base := func() DiagnosisRecord {
		rec := NewDiagnosisRecord()
		rec.DiseaseName = "Leaf Spot"
		rec.CropIdentified = "Tomato"
		rec.Confidence = 80
		rec.Severity = SeverityMedium
		return rec
	}

	t.Run("valid", func(t *testing.T) {
		rec := base()
		assert.NoError(t, rec.Validate())
	})

	t.Run("confidence out of range", func(t *testing.T) {
		rec := base()
		rec.Confidence = 101
		assert.Error(t, rec.Validate())
	})

	t.Run("unknown severity", func(t *testing.T) {
		rec := base()
		rec.Severity = "extreme"
		assert.Error(t, rec.Validate())
	})

	t.Run("healthy with regions", func(t *testing.T) {
		rec := base()
		rec.IsHealthy = true
		rec.Severity = SeverityLow
		rec.DiseaseRegions = []Region{{W: 10, H: 10, Confidence: 60}}
		assert.Error(t, rec.Validate())
	})

	t.Run("healthy with high severity", func(t *testing.T) {
		rec := base()
		rec.IsHealthy = true
		rec.Severity = SeverityHigh
		assert.Error(t, rec.Validate())
	})

	t.Run("region confidence above cap", func(t *testing.T) {
		rec := base()
		rec.DiseaseRegions = []Region{{W: 10, H: 10, Confidence: 96}}
		assert.Error(t, rec.Validate())
	})

	t.Run("missing localized entry", func(t *testing.T) {
		rec := base()
		delete(rec.Localized, "mr")
		assert.Error(t, rec.Validate())
	})
}

func TestNeutralAnalysis(t *testing.T) {
	n := NeutralAnalysis()
	assert.InDelta(t, 0.5, n.HealthScore, 1e-9)
	assert.False(t, n.IsHealthy)
	assert.Equal(t, IssueUnknown, n.DominantIssue)
	assert.Empty(t, n.DiseaseRegions)
}
