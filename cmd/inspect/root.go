package main

import (
	"github.com/spf13/cobra"

	"go-plant-inspector/internal/config"
	"go-plant-inspector/internal/container"
	"go-plant-inspector/internal/logger"
)

const version = "1.0.0"

// NewRootCmd builds the command tree. The container is created once in the
// persistent pre-run so subcommands share one wired pipeline.
func NewRootCmd() *cobra.Command {
	var app *container.Container

	root := &cobra.Command{
		Use:     "inspect",
		Short:   "Plant disease inspection from images and model narratives",
		Long:    "inspect analyzes plant photographs for disease indicators and recovers structured diagnoses from language-model output.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel)
			app, err = container.New(cfg)
			return err
		},
		SilenceUsage: true,
	}

	root.AddCommand(newImageCmd(&app))
	root.AddCommand(newNarrativeCmd(&app))
	return root
}
