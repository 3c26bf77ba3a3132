package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"go-plant-inspector/internal/container"
	apperrors "go-plant-inspector/internal/errors"
)

func newImageCmd(app **container.Container) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "image <file>",
		Short: "Diagnose a plant photograph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := decodeImageFile(args[0])
			if err != nil {
				return err
			}

			rec, err := (*app).Service().Diagnose(cmd.Context(), img, nil)
			if err != nil {
				return err
			}

			if outPath != "" {
				annotated, err := (*app).Annotator().Annotate(img, rec)
				if err != nil {
					return err
				}
				if err := writeImageFile(outPath, annotated, (*app).Config().JPEGQuality); err != nil {
					return err
				}
			}

			return printJSON(cmd, rec)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the annotated image to this path")
	return cmd
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewValidationError("cannot open image file", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, apperrors.NewDecodeError("cannot decode image", err)
	}
	return img, nil
}

func writeImageFile(path string, img image.Image, jpegQuality int) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewInternalError("cannot create output file", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	default:
		return png.Encode(f, img)
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.NewInternalError("cannot encode record", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
