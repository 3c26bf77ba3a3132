package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"go-plant-inspector/internal/container"
	apperrors "go-plant-inspector/internal/errors"
)

func newNarrativeCmd(app **container.Container) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "narrative [file]",
		Short: "Recover a diagnosis from model prose",
		Long:  "Reads unstructured model output from a file, or from stdin when the argument is omitted or \"-\", and recovers the structured diagnosis record.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readNarrative(cmd, args)
			if err != nil {
				return err
			}

			rec, err := (*app).Service().DiagnoseNarrative(cmd.Context(), raw, language)
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "language the narrative was requested in (empty detects from text)")
	return cmd
}

func readNarrative(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", apperrors.NewValidationError("cannot read narrative from stdin", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", apperrors.NewValidationError("cannot read narrative file", err)
	}
	return string(data), nil
}
