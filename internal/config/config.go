package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the process configuration. All values come from the
// environment (optionally seeded from a .env file) with the defaults
// below; the knowledge-table paths are empty by default, meaning the
// embedded tables are used.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Optional overrides for the embedded knowledge tables.
	VocabularyPath   string `envconfig:"VOCABULARY_PATH"`
	DiseaseTablePath string `envconfig:"DISEASE_TABLE_PATH"`

	// Analyzer tuning. The defaults are the empirically fixed values
	// the scorer was calibrated with; override with care.
	HealthyBoundary float64 `envconfig:"HEALTHY_BOUNDARY" default:"0.25"`
	MaxRegions      int     `envconfig:"MAX_REGIONS" default:"5"`

	// Annotation output.
	RenderLabels bool `envconfig:"RENDER_LABELS" default:"true"`
	JPEGQuality  int  `envconfig:"JPEG_QUALITY" default:"90"`
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.HealthyBoundary <= 0 || cfg.HealthyBoundary >= 1 {
		return nil, fmt.Errorf("HEALTHY_BOUNDARY must be in (0,1), got %g", cfg.HealthyBoundary)
	}
	if cfg.MaxRegions <= 0 {
		return nil, fmt.Errorf("MAX_REGIONS must be > 0, got %d", cfg.MaxRegions)
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return nil, fmt.Errorf("JPEG_QUALITY must be in [1,100], got %d", cfg.JPEGQuality)
	}
	return &cfg, nil
}
