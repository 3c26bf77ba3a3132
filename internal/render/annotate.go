// Package render draws diagnosis overlays onto the analyzed image:
// region bounding boxes, confidence labels and a status badge.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	apperrors "go-plant-inspector/internal/errors"
	"go-plant-inspector/pkg/models"
)

var (
	colorHealthy = color.RGBA{R: 46, G: 204, B: 113, A: 255}
	colorHigh    = color.RGBA{R: 235, G: 73, B: 52, A: 255}
	colorMedium  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	colorLow     = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	colorText    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorBadge   = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

// Annotator renders records onto images. Label drawing can be disabled for
// thumbnails where seven-pixel glyphs turn to noise.
type Annotator struct {
	drawLabels bool
}

func NewAnnotator(drawLabels bool) *Annotator {
	return &Annotator{drawLabels: drawLabels}
}

// Annotate returns a copy of img with the record's regions and status drawn
// on. The input image is never modified.
func (a *Annotator) Annotate(img image.Image, rec models.DiagnosisRecord) (*image.RGBA, error) {
	if img == nil {
		return nil, apperrors.NewValidationError("image is nil", nil)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, apperrors.NewValidationError("image has empty bounds", nil)
	}

	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	boxColor := severityColor(rec)
	thickness := 2
	if rec.Severity == models.SeverityHigh {
		thickness = 3
	}

	for i, region := range rec.DiseaseRegions {
		a.drawRegion(out, region, i+1, boxColor, thickness)
	}

	switch {
	case rec.IsHealthy:
		a.drawBadge(out, "HEALTHY", colorHealthy)
	case len(rec.DiseaseRegions) == 0:
		drawBorder(out, boxColor, 4)
		a.drawBadge(out, "SYMPTOMS DETECTED", boxColor)
	}

	return out, nil
}

func severityColor(rec models.DiagnosisRecord) color.RGBA {
	if rec.IsHealthy {
		return colorHealthy
	}
	switch rec.Severity {
	case models.SeverityHigh:
		return colorHigh
	case models.SeverityMedium:
		return colorMedium
	default:
		return colorLow
	}
}

func (a *Annotator) drawRegion(out *image.RGBA, region models.Region, ordinal int, c color.RGBA, thickness int) {
	rect := image.Rect(region.X, region.Y, region.X+region.W, region.Y+region.H)
	drawRectOutline(out, rect, c, thickness)

	if !a.drawLabels {
		return
	}
	label := fmt.Sprintf("#%d (%.0f%%)", ordinal, region.Confidence)
	labelY := rect.Min.Y - 6
	if labelY < basicfont.Face7x13.Height {
		labelY = rect.Min.Y + basicfont.Face7x13.Height + 4
	}
	drawLabel(out, label, rect.Min.X, labelY, c)
}

func (a *Annotator) drawBadge(out *image.RGBA, text string, c color.RGBA) {
	width := textWidth(text)
	x := (out.Bounds().Dx() - width) / 2
	if x < 4 {
		x = 4
	}
	drawLabel(out, text, x, 28, c)
}

func drawRectOutline(out *image.RGBA, rect image.Rectangle, c color.RGBA, thickness int) {
	rect = rect.Intersect(out.Bounds())
	if rect.Empty() {
		return
	}
	for t := 0; t < thickness; t++ {
		top := rect.Min.Y + t
		bottom := rect.Max.Y - 1 - t
		for x := rect.Min.X; x < rect.Max.X; x++ {
			setIfInside(out, x, top, c)
			setIfInside(out, x, bottom, c)
		}
		left := rect.Min.X + t
		right := rect.Max.X - 1 - t
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			setIfInside(out, left, y, c)
			setIfInside(out, right, y, c)
		}
	}
}

func drawBorder(out *image.RGBA, c color.RGBA, thickness int) {
	drawRectOutline(out, out.Bounds(), c, thickness)
}

func setIfInside(out *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(out.Bounds()) {
		out.SetRGBA(x, y, c)
	}
}

func textWidth(text string) int {
	d := font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(text).Ceil()
}

// drawLabel renders text at (x, y) over a filled background plate so labels
// stay legible on busy foliage.
func drawLabel(out *image.RGBA, text string, x, y int, bg color.RGBA) {
	width := textWidth(text)
	height := basicfont.Face7x13.Height
	plate := image.Rect(x-2, y-height, x+width+2, y+4).Intersect(out.Bounds())
	if plate.Empty() {
		return
	}
	draw.Draw(out, plate, &image.Uniform{C: bg}, image.Point{}, draw.Src)

	ink := colorText
	if bg == colorLow || bg == colorMedium {
		ink = colorBadge
	}
	d := font.Drawer{
		Dst:  out,
		Src:  &image.Uniform{C: ink},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
