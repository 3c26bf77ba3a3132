package analyzer

import (
	"image"
	"math"
	"sync"

	"go-plant-inspector/internal/logger"
	"go-plant-inspector/pkg/models"
)

// colorHealthAnalyzer implements HealthAnalyzer with deterministic
// color-space heuristics; no learned model is involved.
type colorHealthAnalyzer struct {
	opts    Options
	regions RegionExtractor
}

// NewHealthAnalyzer creates a color-space health analyzer.
func NewHealthAnalyzer(opts Options) HealthAnalyzer {
	return &colorHealthAnalyzer{
		opts:    opts,
		regions: NewRegionExtractor(opts),
	}
}

// scan holds the per-pixel classification of one image.
type scan struct {
	width, height int
	gray          []uint8
	brownMask     []uint8
	yellowMask    []uint8
	greenCount    int
	brownCount    int
	yellowCount   int
	hist          [256]int
}

// Analyze scores plant health from raw pixels. It always returns a
// valid result; any internal failure yields the neutral default.
func (a *colorHealthAnalyzer) Analyze(img image.Image) (result models.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("health analysis failed, returning neutral result")
			result = models.NeutralAnalysis()
		}
	}()

	if img == nil {
		return models.NeutralAnalysis()
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return models.NeutralAnalysis()
	}
	total := width * height

	s := a.scanPixels(img)

	greenRatio := float64(s.greenCount) / float64(total)
	brownRatio := float64(s.brownCount) / float64(total)
	yellowRatio := float64(s.yellowCount) / float64(total)

	// Background exclusion: dark pixels count only on the Otsu
	// foreground, and the dark ratio divides by the foreground area.
	otsu := otsuThreshold(&s.hist, total)
	disease := make([]uint8, total)
	foreground, darkCount := 0, 0
	for i, g := range s.gray {
		fg := g > otsu
		if fg {
			foreground++
		}
		dark := fg && g <= a.opts.DarkMaxValue
		if dark {
			darkCount++
		}
		if dark || s.brownMask[i] != 0 || s.yellowMask[i] != 0 {
			disease[i] = 1
		}
	}
	darkRatio := float64(darkCount) / math.Max(float64(foreground), 1)

	texture := laplacianVariance(s.gray, width, height)

	disease = morphClose(disease, width, height, a.opts.MorphKernelSize)
	disease = morphOpen(disease, width, height, a.opts.MorphKernelSize)
	regions := a.regions.ExtractRegions(disease, width, height)

	score := a.healthScore(greenRatio, brownRatio, yellowRatio, darkRatio)
	isHealthy := score < a.opts.HealthyBoundary

	return models.AnalysisResult{
		HealthScore:     score,
		IsHealthy:       isHealthy,
		GreenRatio:      greenRatio,
		BrownRatio:      brownRatio,
		YellowRatio:     yellowRatio,
		DarkRatio:       darkRatio,
		TextureVariance: texture,
		DominantIssue:   a.dominantIssue(isHealthy, brownRatio, yellowRatio, darkRatio),
		DiseaseRegions:  regions,
	}
}

// scanPixels classifies every pixel in parallel horizontal strips.
// Strips write disjoint rows of the shared slices; only the counters
// and histogram need the mutex.
func (a *colorHealthAnalyzer) scanPixels(img image.Image) *scan {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	s := &scan{
		width:      width,
		height:     height,
		gray:       make([]uint8, width*height),
		brownMask:  make([]uint8, width*height),
		yellowMask: make([]uint8, width*height),
	}

	var mu sync.Mutex
	forEachStrip(height, a.opts.Workers, func(startY, endY int) {
		var localHist [256]int
		localGreen, localBrown, localYellow := 0, 0, 0

		for y := startY; y < endY; y++ {
			row := y * width
			for x := 0; x < width; x++ {
				r16, g16, b16, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				r8, g8, b8 := uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)

				h, sat, val := rgbToHSV(r8, g8, b8)
				g := grayLuminance(r8, g8, b8)
				s.gray[row+x] = g
				localHist[g]++

				if a.opts.GreenBand.Contains(h, sat, val) {
					localGreen++
				}
				if a.opts.BrownBand.Contains(h, sat, val) {
					s.brownMask[row+x] = 1
					localBrown++
				}
				if a.opts.YellowBand.Contains(h, sat, val) {
					s.yellowMask[row+x] = 1
					localYellow++
				}
			}
		}

		mu.Lock()
		s.greenCount += localGreen
		s.brownCount += localBrown
		s.yellowCount += localYellow
		for v := range localHist {
			s.hist[v] += localHist[v]
		}
		mu.Unlock()
	})
	return s
}

// healthScore combines the band ratios additively, each term triggered
// past its threshold and capped independently, clamped to [0,1].
func (a *colorHealthAnalyzer) healthScore(green, brown, yellow, dark float64) float64 {
	score := 0.0
	if brown > a.opts.BrownTrigger {
		score += math.Min(a.opts.BrownCap, brown*a.opts.BrownWeight)
	}
	if dark > a.opts.DarkTrigger {
		score += math.Min(a.opts.DarkCap, dark*a.opts.DarkWeight)
	}
	if yellow > a.opts.YellowTrigger {
		score += math.Min(a.opts.YellowCap, yellow*a.opts.YellowWeight)
	}
	if green < a.opts.LowGreenRatio {
		score += a.opts.LowGreenPenalty
	}
	return math.Min(1.0, math.Max(0.0, score))
}

func (a *colorHealthAnalyzer) dominantIssue(isHealthy bool, brown, yellow, dark float64) models.Issue {
	if isHealthy {
		return models.IssueHealthy
	}
	switch {
	case brown >= yellow && brown >= dark:
		return models.IssueFungal
	case yellow >= brown:
		return models.IssueNutrient
	default:
		return models.IssueNecrosis
	}
}
