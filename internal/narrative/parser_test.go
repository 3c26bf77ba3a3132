package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-plant-inspector/pkg/models"
)

func TestParseHeadedSections(t *testing.T) {
	raw := "**Crop Identified**: Tomato\n" +
		"**Disease Name**: Early Blight\n" +
		"**Symptoms**:\n- dark concentric spots\n- yellowing around lesions\n" +
		"**How it was formed**: Fungal spores overwinter in plant debris and splash onto lower leaves.\n" +
		"**How we can prevent**:\n1. Rotate crops\n2. Mulch around plants\n" +
		"**How we can recover**:\n- Remove affected leaves\n- Apply copper fungicide\n"

	p := NewParser()
	rec := p.Parse(raw, "en")

	assert.Equal(t, "Tomato", rec.CropIdentified)
	assert.Equal(t, "Early Blight", rec.DiseaseName)
	assert.Equal(t, []string{"dark concentric spots", "yellowing around lesions"}, rec.Symptoms)
	assert.Equal(t, []string{"Rotate crops", "Mulch around plants"}, rec.PreventionTips)
	assert.Equal(t, []string{"Remove affected leaves", "Apply copper fungicide"}, rec.TreatmentSteps)
	assert.Contains(t, rec.Description, "Fungal spores")
	assert.Equal(t, models.SeverityMedium, rec.Severity)
	assert.False(t, rec.IsHealthy)
	assert.InDelta(t, 99, rec.Confidence, 1e-9)
}

func TestParseIntroBecomesDescription(t *testing.T) {
	raw := "The leaf shows clear fungal damage on the lower surface.\n" +
		"**Disease Name**: Leaf Spot\n"

	rec := NewParser().Parse(raw, "en")
	assert.Equal(t, "The leaf shows clear fungal damage on the lower surface.", rec.Description)
	assert.Equal(t, "Leaf Spot", rec.DiseaseName)
}

func TestParseNumberedHeaders(t *testing.T) {
	raw := "Analysis of tomato leaves.\n" +
		"1. Symptoms: brown rings\n" +
		"2. How we can prevent: avoid overhead watering\n"

	rec := NewParser().Parse(raw, "en")
	assert.Equal(t, []string{"brown rings"}, rec.Symptoms)
	assert.Equal(t, []string{"avoid overhead watering"}, rec.PreventionTips)
	assert.Equal(t, "Tomato", rec.CropIdentified)
}

func TestParseHealthyText(t *testing.T) {
	rec := NewParser().Parse("The plant is healthy.", "en")

	assert.Equal(t, "Healthy", rec.DiseaseName)
	assert.Equal(t, models.SeverityLow, rec.Severity)
	assert.True(t, rec.IsHealthy)
	assert.Empty(t, rec.DiseaseRegions)

	require.Contains(t, rec.Localized, "hi")
	assert.Equal(t, "स्वस्थ", rec.Localized["hi"].DiseaseName)
	assert.Equal(t, "ஆரோக்கியமானது", rec.Localized["ta"].DiseaseName)
}

func TestParseHealthyDoesNotOverrideNamedDisease(t *testing.T) {
	raw := "The specimen looks mostly normal.\n**Disease Name**: Early Blight\n"

	rec := NewParser().Parse(raw, "en")
	assert.Equal(t, "Early Blight", rec.DiseaseName)
	assert.False(t, rec.IsHealthy)
}

func TestParseHealthyOverridesNoneDiseaseHeader(t *testing.T) {
	raw := "The plant is thriving.\n**Disease Name**: None detected\n"

	rec := NewParser().Parse(raw, "en")
	assert.Equal(t, "Healthy", rec.DiseaseName)
	assert.True(t, rec.IsHealthy)
	assert.Equal(t, models.SeverityLow, rec.Severity)
}

func TestParseSeverityEscalation(t *testing.T) {
	rec := NewParser().Parse("This is a severe infestation that can kill the crop within days.", "en")
	assert.Equal(t, PlaceholderDiseaseName, rec.DiseaseName)
	assert.Equal(t, models.SeverityHigh, rec.Severity)
}

func TestParseCropFromContext(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		crop string
	}{
		{"of phrase", "Detailed analysis of tomato leaves follows.", "Tomato"},
		{"plural stripped", "Blight commonly occurs in potatoes during wet seasons.", "Potato"},
		{"maize alias", "The disease is widespread in maize fields.", "Corn"},
		{"known crop scan", "Typical wheat rust pustules are visible.", "Wheat"},
		{"no crop", "Something unrecognizable happened here.", "Plant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewParser().Parse(tt.raw, "en")
			assert.Equal(t, tt.crop, rec.CropIdentified)
		})
	}
}

func TestParseFuzzyCropSpelling(t *testing.T) {
	crop, ok := fuzzyCrop("tomatto")
	require.True(t, ok)
	assert.Equal(t, "Tomato", crop)

	_, ok = fuzzyCrop("xyzzy")
	assert.False(t, ok)
}

func TestParseEmptyText(t *testing.T) {
	rec := NewParser().Parse("", "en")

	assert.Equal(t, PlaceholderDiseaseName, rec.DiseaseName)
	assert.Equal(t, "Plant", rec.CropIdentified)
	assert.InDelta(t, 99, rec.Confidence, 1e-9)
	assert.Equal(t, models.SeverityMedium, rec.Severity)
	for _, lang := range models.SecondaryLanguages {
		assert.Contains(t, rec.Localized, lang)
	}
}

func TestParseLocalizesSecondaryLanguage(t *testing.T) {
	raw := "**Disease Name**: Early Blight\n**Symptoms**:\n- spotting\n"

	rec := NewParser().Parse(raw, "hi")
	hi := rec.Localized["hi"]
	assert.Equal(t, "Early Blight", hi.DiseaseName)
	assert.Equal(t, []string{"spotting"}, hi.Symptoms)
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"- Remove affected leaves", "Remove affected leaves"},
		{"2. Mulch around plants", "Mulch around plants"},
		{"  • Spray neem oil  ", "Spray neem oil"},
		{"***bold claim", "bold claim"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, cleanLine(tt.in))
	}
}
