// Package resolver maps classifier output to an agricultural crop name
// through a cascade of strategies, falling back to a generic "Plant".
package resolver

import (
	"go-plant-inspector/internal/knowledge"
	"go-plant-inspector/pkg/models"
)

// DefaultCrop is returned when no strategy matches.
const DefaultCrop = "Plant"

// DefaultConfidence is used when no classifier output is available at all.
const DefaultConfidence = 75.0

// CropResolver resolves ranked classifier predictions against the label
// vocabulary. It never fails; confidence is passed through uncalibrated.
type CropResolver struct {
	vocab *knowledge.Vocabulary
}

// New creates a crop resolver over the given vocabulary.
func New(vocab *knowledge.Vocabulary) *CropResolver {
	return &CropResolver{vocab: vocab}
}

// Resolve runs the cascade in fixed order, first match wins:
//  1. index map over the top-5 indices in rank order
//  2. keyword match against each top-5 label text
//  3. keyword match against the top-1 label text
//  4. the generic default
func (r *CropResolver) Resolve(top1 int, top1Conf float64, top5 []int, labelText func(int) string) models.CropIdentification {
	for _, idx := range top5 {
		if crop, ok := r.vocab.CropForIndex(idx); ok {
			return models.CropIdentification{Name: crop, Confidence: top1Conf}
		}
	}

	if labelText != nil {
		for _, idx := range top5 {
			if crop, ok := r.vocab.CropForLabel(labelText(idx)); ok {
				return models.CropIdentification{Name: crop, Confidence: top1Conf}
			}
		}
		if crop, ok := r.vocab.CropForLabel(labelText(top1)); ok {
			return models.CropIdentification{Name: crop, Confidence: top1Conf}
		}
	}

	return models.CropIdentification{Name: DefaultCrop, Confidence: top1Conf}
}

// ResolveOutput resolves a full classifier output; a nil output yields
// the generic crop at the default confidence.
func (r *CropResolver) ResolveOutput(out *models.ClassifierOutput) models.CropIdentification {
	if out == nil {
		return models.CropIdentification{Name: DefaultCrop, Confidence: DefaultConfidence}
	}
	return r.Resolve(out.Top1Index, out.Top1Confidence, out.Top5Indices, out.LabelText)
}
