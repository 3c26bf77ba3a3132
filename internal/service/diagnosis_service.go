// Package service orchestrates the diagnosis pipeline: analysis, crop
// resolution, record composition and narrative recovery.
package service

import (
	"context"
	"image"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-plant-inspector/internal/analyzer"
	"go-plant-inspector/internal/composer"
	apperrors "go-plant-inspector/internal/errors"
	"go-plant-inspector/internal/logger"
	"go-plant-inspector/internal/narrative"
	"go-plant-inspector/internal/observer"
	"go-plant-inspector/internal/resolver"
	"go-plant-inspector/pkg/models"
	"go-plant-inspector/pkg/validation"
)

// DiagnosisService is the single entry point callers use; both paths yield
// the same canonical record shape.
type DiagnosisService interface {
	// Diagnose runs the pixel pipeline over a decoded image. classifier may
	// be nil when no classifier ran; the crop then stays generic.
	Diagnose(ctx context.Context, img image.Image, classifier *models.ClassifierOutput) (models.DiagnosisRecord, error)

	// DiagnoseNarrative recovers a record from model prose. Structured JSON
	// in the text is preferred; the prose parser is the fallback.
	DiagnoseNarrative(ctx context.Context, raw, language string) (models.DiagnosisRecord, error)
}

type diagnosisService struct {
	analyzer  analyzer.HealthAnalyzer
	resolver  *resolver.CropResolver
	composer  *composer.DiagnosisComposer
	parser    *narrative.Parser
	validator *validation.RecordValidator
	bus       *observer.EventBus
}

// NewDiagnosisService wires the pipeline components together.
func NewDiagnosisService(
	healthAnalyzer analyzer.HealthAnalyzer,
	cropResolver *resolver.CropResolver,
	diagComposer *composer.DiagnosisComposer,
	parser *narrative.Parser,
	bus *observer.EventBus,
) DiagnosisService {
	return &diagnosisService{
		analyzer:  healthAnalyzer,
		resolver:  cropResolver,
		composer:  diagComposer,
		parser:    parser,
		validator: validation.NewRecordValidator(),
		bus:       bus,
	}
}

func (s *diagnosisService) Diagnose(ctx context.Context, img image.Image, classifier *models.ClassifierOutput) (models.DiagnosisRecord, error) {
	start := time.Now()
	id := uuid.NewString()
	s.bus.Notify(ctx, observer.DiagnosisEvent{Type: observer.DiagnosisStarted, RecordID: id, Source: "image"})

	if err := ctx.Err(); err != nil {
		return models.DiagnosisRecord{}, s.fail(ctx, id, "image", apperrors.NewInternalError("context cancelled", err))
	}
	if img == nil {
		return models.DiagnosisRecord{}, s.fail(ctx, id, "image", apperrors.NewValidationError("image is nil", nil))
	}

	analysis := s.analyzer.Analyze(img)
	crop := s.resolver.ResolveOutput(classifier)

	rec := s.composer.Compose(crop, analysis)
	rec.ID = id

	s.reportIssues(rec)
	s.complete(ctx, rec, "image", time.Since(start))
	return rec, nil
}

func (s *diagnosisService) DiagnoseNarrative(ctx context.Context, raw, language string) (models.DiagnosisRecord, error) {
	start := time.Now()
	id := uuid.NewString()
	s.bus.Notify(ctx, observer.DiagnosisEvent{Type: observer.DiagnosisStarted, RecordID: id, Source: "narrative"})

	if strings.TrimSpace(raw) == "" {
		return models.DiagnosisRecord{}, s.fail(ctx, id, "narrative", apperrors.NewValidationError("narrative text is empty", nil))
	}

	rec, err := narrative.ExtractStructured(raw)
	if err != nil {
		logger.WithField("record_id", id).Debug("no structured payload, parsing prose")
		rec = s.parser.Parse(raw, language)
	}
	rec.ID = id

	s.reportIssues(rec)
	s.complete(ctx, rec, "narrative", time.Since(start))
	return rec, nil
}

func (s *diagnosisService) reportIssues(rec models.DiagnosisRecord) {
	if issues := s.validator.Validate(rec); len(issues) > 0 {
		logger.WithFields(logrus.Fields{
			"record_id": rec.ID,
			"issues":    s.validator.Messages(issues),
		}).Warn("record failed invariant checks")
	}
}

func (s *diagnosisService) complete(ctx context.Context, rec models.DiagnosisRecord, source string, elapsed time.Duration) {
	s.bus.Notify(ctx, observer.DiagnosisEvent{
		Type:           observer.DiagnosisCompleted,
		RecordID:       rec.ID,
		Crop:           rec.CropIdentified,
		DiseaseName:    rec.DiseaseName,
		IsHealthy:      rec.IsHealthy,
		Source:         source,
		ProcessingTime: elapsed,
	})
}

func (s *diagnosisService) fail(ctx context.Context, id, source string, err error) error {
	s.bus.Notify(ctx, observer.DiagnosisEvent{
		Type:         observer.DiagnosisFailed,
		RecordID:     id,
		Source:       source,
		ErrorMessage: err.Error(),
	})
	return err
}
