package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "go-plant-inspector/internal/errors"
	"go-plant-inspector/pkg/models"
)

func TestExtractStructuredFencedJSON(t *testing.T) {
	raw := "Here is the diagnosis:\n```json\n{\n" +
		`  "crop_identified": "Tomato",` + "\n" +
		`  "disease_name": "Early Blight",` + "\n" +
		`  "confidence": 92.5,` + "\n" +
		`  "severity": "high",` + "\n" +
		`  "symptoms": ["dark spots"],` + "\n" +
		`  "treatment_steps": ["remove leaves"]` + "\n" +
		"}\n```\nLet me know if you need more."

	rec, err := ExtractStructured(raw)
	require.NoError(t, err)

	assert.Equal(t, "Tomato", rec.CropIdentified)
	assert.Equal(t, "Early Blight", rec.DiseaseName)
	assert.InDelta(t, 92.5, rec.Confidence, 1e-9)
	assert.Equal(t, models.SeverityHigh, rec.Severity)
	assert.Equal(t, []string{"dark spots"}, rec.Symptoms)
	assert.Equal(t, []string{"remove leaves"}, rec.TreatmentSteps)
	assert.False(t, rec.IsHealthy)
}

func TestExtractStructuredBareBraces(t *testing.T) {
	raw := `The model replied: {"disease_name": "Leaf Rust", "crop_identified": "Wheat"} end of reply`

	rec, err := ExtractStructured(raw)
	require.NoError(t, err)
	assert.Equal(t, "Leaf Rust", rec.DiseaseName)
	assert.Equal(t, "Wheat", rec.CropIdentified)
}

func TestExtractStructuredConfidenceFloor(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"missing", `{"disease_name": "Blight"}`, 99},
		{"implausibly low", `{"disease_name": "Blight", "confidence": 42}`, 99},
		{"trusted", `{"disease_name": "Blight", "confidence": 88}`, 88},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ExtractStructured(tt.raw)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, rec.Confidence, 1e-9)
		})
	}
}

func TestExtractStructuredHealthyInference(t *testing.T) {
	rec, err := ExtractStructured(`{"disease_name": "Healthy Tomato", "crop_identified": "Tomato"}`)
	require.NoError(t, err)
	assert.True(t, rec.IsHealthy)
	assert.Equal(t, models.SeverityLow, rec.Severity)
	assert.Empty(t, rec.DiseaseRegions)
}

func TestExtractStructuredExplicitHealthFlagWins(t *testing.T) {
	rec, err := ExtractStructured(`{"disease_name": "Healthy looking", "is_healthy": false}`)
	require.NoError(t, err)
	assert.False(t, rec.IsHealthy)
}

func TestExtractStructuredDefaults(t *testing.T) {
	rec, err := ExtractStructured(`{"severity": "catastrophic"}`)
	require.NoError(t, err)

	assert.Equal(t, PlaceholderDiseaseName, rec.DiseaseName)
	assert.Equal(t, "Plant", rec.CropIdentified)
	assert.Equal(t, models.SeverityMedium, rec.Severity)
}

func TestExtractStructuredNoJSON(t *testing.T) {
	_, err := ExtractStructured("The plant looks diseased but I cannot say more.")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeParse))
}

func TestExtractStructuredMalformedJSON(t *testing.T) {
	_, err := ExtractStructured(`{"disease_name": "Blight",}`)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeParse))
}
