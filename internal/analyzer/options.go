package analyzer

// HSVBand is an inclusive hue/saturation/value range in the half-degree
// hue convention (H 0-180, S 0-255, V 0-255).
type HSVBand struct {
	HueMin, HueMax uint8
	SatMin, SatMax uint8
	ValMin, ValMax uint8
}

// Contains reports whether an HSV triple falls inside the band.
func (b HSVBand) Contains(h, s, v uint8) bool {
	return h >= b.HueMin && h <= b.HueMax &&
		s >= b.SatMin && s <= b.SatMax &&
		v >= b.ValMin && v <= b.ValMax
}

// Options carries every threshold the analyzer uses. The defaults are
// empirically fixed constants; no learned model is involved.
type Options struct {
	// Color bands for pixel classification.
	GreenBand  HSVBand // healthy tissue
	BrownBand  HSVBand // lesion / fungal markers
	YellowBand HSVBand // chlorosis

	// Dark (necrotic) pixels: luminance at or below DarkMaxValue,
	// counted on the Otsu-segmented foreground only. The dark ratio
	// divides by the foreground area, not the full frame.
	DarkMaxValue uint8

	// Morphological cleanup kernel side length for the disease mask.
	MorphKernelSize int

	// Region filters, as fractions of image area and bounding-box
	// width/height aspect limits (exclusive).
	MinAreaRatio float64
	MaxAreaRatio float64
	MinAspect    float64
	MaxAspect    float64
	MaxRegions   int

	// Health-score combination: each ratio contributes only past its
	// trigger, scaled by its weight and clamped at its cap.
	BrownTrigger, BrownWeight, BrownCap    float64
	DarkTrigger, DarkWeight, DarkCap       float64
	YellowTrigger, YellowWeight, YellowCap float64
	LowGreenRatio, LowGreenPenalty         float64

	// Scores below this boundary count as healthy.
	HealthyBoundary float64

	// Workers caps the parallel strip scan; 0 means one per CPU.
	Workers int
}

// DefaultOptions returns the calibrated default thresholds.
func DefaultOptions() Options {
	return Options{
		GreenBand:  HSVBand{HueMin: 35, HueMax: 85, SatMin: 40, SatMax: 255, ValMin: 40, ValMax: 255},
		BrownBand:  HSVBand{HueMin: 8, HueMax: 25, SatMin: 40, SatMax: 255, ValMin: 30, ValMax: 180},
		YellowBand: HSVBand{HueMin: 20, HueMax: 35, SatMin: 50, SatMax: 255, ValMin: 50, ValMax: 255},

		DarkMaxValue:    40,
		MorphKernelSize: 5,

		MinAreaRatio: 0.005,
		MaxAreaRatio: 0.6,
		MinAspect:    0.2,
		MaxAspect:    5.0,
		MaxRegions:   5,

		BrownTrigger: 0.03, BrownWeight: 8, BrownCap: 0.5,
		DarkTrigger: 0.02, DarkWeight: 5, DarkCap: 0.3,
		YellowTrigger: 0.1, YellowWeight: 1.5, YellowCap: 0.2,
		LowGreenRatio: 0.2, LowGreenPenalty: 0.2,

		HealthyBoundary: 0.25,
	}
}

// WithHealthyBoundary overrides the healthy score boundary.
func (o Options) WithHealthyBoundary(boundary float64) Options {
	o.HealthyBoundary = boundary
	return o
}

// WithMaxRegions overrides the region cap.
func (o Options) WithMaxRegions(n int) Options {
	o.MaxRegions = n
	return o
}

// WithWorkers overrides the parallel scan width.
func (o Options) WithWorkers(n int) Options {
	o.Workers = n
	return o
}
