package models

// Issue classifies the dominant symptom family found by color analysis.
type Issue string

const (
	IssueHealthy  Issue = "healthy"
	IssueFungal   Issue = "fungal"
	IssueNutrient Issue = "nutrient"
	IssueNecrosis Issue = "necrosis"
	IssueUnknown  Issue = "unknown"
)

// Region is a candidate disease region in pixel coordinates.
type Region struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	W          int     `json:"w"`
	H          int     `json:"h"`
	Area       float64 `json:"area"`
	Confidence float64 `json:"confidence"`
}

// AnalysisResult is the output of the color-space health analyzer.
// It is created fresh per image and never mutated afterwards.
type AnalysisResult struct {
	HealthScore float64 `json:"health_score"`
	IsHealthy   bool    `json:"is_healthy"`

	// Fraction of pixels falling into each color band.
	GreenRatio  float64 `json:"green_ratio"`
	BrownRatio  float64 `json:"brown_ratio"`
	YellowRatio float64 `json:"yellow_ratio"`
	DarkRatio   float64 `json:"dark_ratio"`

	TextureVariance float64 `json:"texture_variance"`

	DominantIssue  Issue    `json:"dominant_issue"`
	DiseaseRegions []Region `json:"disease_regions"`
}

// NeutralAnalysis is the fallback returned when analysis cannot
// complete: undecided score, flagged unhealthy so callers do not skip
// inspection, no regions.
func NeutralAnalysis() AnalysisResult {
	return AnalysisResult{
		HealthScore:    0.5,
		IsHealthy:      false,
		DominantIssue:  IssueUnknown,
		DiseaseRegions: []Region{},
	}
}

// CropIdentification names the crop recovered from classifier output.
// Confidence is the raw top-1 classifier confidence in [0,100].
type CropIdentification struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// ClassifierOutput carries the ranked predictions of an external image
// classifier. LabelText resolves a label index to its human-readable
// label; it may be nil when no label dictionary is available.
type ClassifierOutput struct {
	Top1Index      int
	Top1Confidence float64
	Top5Indices    []int
	LabelText      func(index int) string
}
