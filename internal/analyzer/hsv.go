package analyzer

import "math"

// rgbToHSV converts 8-bit RGB to the half-degree HSV convention
// (H 0-180, S 0-255, V 0-255) so the band thresholds apply directly.
func rgbToHSV(r, g, b uint8) (h, s, v uint8) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	delta := maxC - minC

	var hue float64
	switch {
	case delta == 0:
		hue = 0
	case maxC == rf:
		hue = 60 * math.Mod((gf-bf)/delta, 6)
	case maxC == gf:
		hue = 60 * ((bf-rf)/delta + 2)
	default:
		hue = 60 * ((rf-gf)/delta + 4)
	}
	if hue < 0 {
		hue += 360
	}

	var sat float64
	if maxC > 0 {
		sat = delta / maxC
	}

	h = uint8(math.Round(hue / 2))
	s = uint8(math.Round(sat * 255))
	v = uint8(math.Round(maxC * 255))
	return h, s, v
}

// grayLuminance converts 8-bit RGB to grayscale using the Rec. 601
// weights, matching the usual BGR-to-gray conversion.
func grayLuminance(r, g, b uint8) uint8 {
	y := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	return uint8(math.Round(y))
}
