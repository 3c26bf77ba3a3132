// Package container builds the object graph from configuration.
package container

import (
	"go-plant-inspector/internal/analyzer"
	"go-plant-inspector/internal/composer"
	"go-plant-inspector/internal/config"
	"go-plant-inspector/internal/knowledge"
	"go-plant-inspector/internal/narrative"
	"go-plant-inspector/internal/observer"
	"go-plant-inspector/internal/render"
	"go-plant-inspector/internal/resolver"
	"go-plant-inspector/internal/service"
)

// Container holds the wired components for one process lifetime.
type Container struct {
	cfg       *config.Config
	service   service.DiagnosisService
	annotator *render.Annotator
	stats     *observer.StatsObserver
}

// New loads knowledge tables per the config and wires the pipeline.
// Table paths left empty fall back to the embedded defaults.
func New(cfg *config.Config) (*Container, error) {
	vocab, err := loadVocabulary(cfg)
	if err != nil {
		return nil, err
	}
	table, err := loadDiseaseTable(cfg)
	if err != nil {
		return nil, err
	}

	opts := analyzer.DefaultOptions().
		WithHealthyBoundary(cfg.HealthyBoundary).
		WithMaxRegions(cfg.MaxRegions)

	bus := observer.NewEventBus()
	bus.Subscribe(observer.NewLoggingObserver())
	stats := observer.NewStatsObserver()
	bus.Subscribe(stats)

	svc := service.NewDiagnosisService(
		analyzer.NewHealthAnalyzer(opts),
		resolver.New(vocab),
		composer.New(table),
		narrative.NewParser(),
		bus,
	)

	return &Container{
		cfg:       cfg,
		service:   svc,
		annotator: render.NewAnnotator(cfg.RenderLabels),
		stats:     stats,
	}, nil
}

func loadVocabulary(cfg *config.Config) (*knowledge.Vocabulary, error) {
	if cfg.VocabularyPath == "" {
		return knowledge.DefaultVocabulary(), nil
	}
	return knowledge.LoadVocabulary(cfg.VocabularyPath)
}

func loadDiseaseTable(cfg *config.Config) (*knowledge.DiseaseTable, error) {
	if cfg.DiseaseTablePath == "" {
		return knowledge.DefaultDiseaseTable(), nil
	}
	return knowledge.LoadDiseaseTable(cfg.DiseaseTablePath)
}

func (c *Container) Config() *config.Config { return c.cfg }

func (c *Container) Service() service.DiagnosisService { return c.service }

func (c *Container) Annotator() *render.Annotator { return c.annotator }

func (c *Container) Stats() *observer.StatsObserver { return c.stats }
