package analyzer

import (
	"image"

	"go-plant-inspector/pkg/models"
)

// HealthAnalyzer scores plant health from raw pixel data. Analyze is a
// total function: it returns a schema-complete result for any image and
// never panics, falling back to the neutral default on internal failure.
type HealthAnalyzer interface {
	Analyze(img image.Image) models.AnalysisResult
}

// RegionExtractor turns a binary disease mask into candidate regions.
type RegionExtractor interface {
	ExtractRegions(mask []uint8, width, height int) []models.Region
}
