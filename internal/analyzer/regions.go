package analyzer

import (
	"math"
	"sort"

	"go-plant-inspector/pkg/models"
)

// regionExtractor finds connected components of the disease mask and
// filters them into candidate regions.
type regionExtractor struct {
	opts Options
}

// NewRegionExtractor creates a region extractor with the given options.
func NewRegionExtractor(opts Options) RegionExtractor {
	return &regionExtractor{opts: opts}
}

type blob struct {
	area                   int
	minX, minY, maxX, maxY int
}

// ExtractRegions labels 8-connected components of the mask, filters
// them by area fraction and bounding-box aspect, and returns at most
// MaxRegions regions ordered by area descending.
func (e *regionExtractor) ExtractRegions(mask []uint8, width, height int) []models.Region {
	regions := []models.Region{}
	if width <= 0 || height <= 0 {
		return regions
	}
	total := float64(width * height)
	minArea := total * e.opts.MinAreaRatio
	maxArea := total * e.opts.MaxAreaRatio

	blobs := e.labelComponents(mask, width, height)
	sort.Slice(blobs, func(i, j int) bool { return blobs[i].area > blobs[j].area })

	for _, b := range blobs {
		area := float64(b.area)
		if area <= minArea || area >= maxArea {
			continue
		}
		w := b.maxX - b.minX + 1
		h := b.maxY - b.minY + 1
		aspect := float64(w) / float64(h)
		if aspect <= e.opts.MinAspect || aspect >= e.opts.MaxAspect {
			continue
		}
		regions = append(regions, models.Region{
			X:          b.minX,
			Y:          b.minY,
			W:          w,
			H:          h,
			Area:       area,
			Confidence: math.Min(95, 50+(area/minArea)*10),
		})
		if len(regions) >= e.opts.MaxRegions {
			break
		}
	}
	return regions
}

// labelComponents flood-fills the mask destructively (visited pixels
// are zeroed), so it operates on its own copy.
func (e *regionExtractor) labelComponents(mask []uint8, width, height int) []blob {
	work := make([]uint8, len(mask))
	copy(work, mask)

	var blobs []blob
	stack := make([]int, 0, 256)

	for start, v := range work {
		if v == 0 {
			continue
		}
		work[start] = 0
		stack = append(stack[:0], start)
		b := blob{minX: width, minY: height, maxX: -1, maxY: -1}

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := idx%width, idx/width

			b.area++
			if x < b.minX {
				b.minX = x
			}
			if x > b.maxX {
				b.maxX = x
			}
			if y < b.minY {
				b.minY = y
			}
			if y > b.maxY {
				b.maxY = y
			}

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					nidx := ny*width + nx
					if work[nidx] != 0 {
						work[nidx] = 0
						stack = append(stack, nidx)
					}
				}
			}
		}
		blobs = append(blobs, b)
	}
	return blobs
}
