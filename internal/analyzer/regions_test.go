package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maskWithRect(width, height int, x0, y0, x1, y1 int) []uint8 {
	mask := make([]uint8, width*height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mask[y*width+x] = 1
		}
	}
	return mask
}

func TestExtractRegionsFindsComponent(t *testing.T) {
	e := NewRegionExtractor(DefaultOptions())
	mask := maskWithRect(100, 100, 10, 10, 40, 30)

	regions := e.ExtractRegions(mask, 100, 100)
	require.Len(t, regions, 1)
	assert.Equal(t, 10, regions[0].X)
	assert.Equal(t, 10, regions[0].Y)
	assert.Equal(t, 30, regions[0].W)
	assert.Equal(t, 20, regions[0].H)
	assert.InDelta(t, 600, regions[0].Area, 0.5)
}

func TestExtractRegionsOrdersByAreaDescending(t *testing.T) {
	e := NewRegionExtractor(DefaultOptions())
	mask := maskWithRect(100, 100, 5, 5, 20, 20)
	for y := 50; y < 90; y++ {
		for x := 50; x < 90; x++ {
			mask[y*100+x] = 1
		}
	}

	regions := e.ExtractRegions(mask, 100, 100)
	require.Len(t, regions, 2)
	assert.Greater(t, regions[0].Area, regions[1].Area)
	assert.Equal(t, 50, regions[0].X)
}

func TestExtractRegionsFilters(t *testing.T) {
	e := NewRegionExtractor(DefaultOptions())

	t.Run("tiny component dropped", func(t *testing.T) {
		// 6x6 = 36 pixels, below the 0.5% floor of a 100x100 frame.
		mask := maskWithRect(100, 100, 10, 10, 16, 16)
		assert.Empty(t, e.ExtractRegions(mask, 100, 100))
	})

	t.Run("frame-filling component dropped", func(t *testing.T) {
		mask := maskWithRect(100, 100, 5, 5, 95, 95)
		assert.Empty(t, e.ExtractRegions(mask, 100, 100))
	})

	t.Run("extreme aspect dropped", func(t *testing.T) {
		// 80x2 line: large enough by area, aspect 40 is out of range.
		mask := maskWithRect(100, 100, 10, 50, 90, 52)
		assert.Empty(t, e.ExtractRegions(mask, 100, 100))
	})
}

func TestExtractRegionsCapsCount(t *testing.T) {
	e := NewRegionExtractor(DefaultOptions().WithMaxRegions(2))
	mask := make([]uint8, 100*100)
	for i := 0; i < 4; i++ {
		x0 := 5 + i*24
		for y := 10; y < 30; y++ {
			for x := x0; x < x0+15; x++ {
				mask[y*100+x] = 1
			}
		}
	}

	regions := e.ExtractRegions(mask, 100, 100)
	assert.Len(t, regions, 2)
}

func TestExtractRegionsConfidenceCap(t *testing.T) {
	e := NewRegionExtractor(DefaultOptions())
	mask := maskWithRect(100, 100, 20, 20, 80, 70)

	regions := e.ExtractRegions(mask, 100, 100)
	require.Len(t, regions, 1)
	assert.InDelta(t, 95, regions[0].Confidence, 1e-9)
}

func TestExtractRegionsEmptyMask(t *testing.T) {
	e := NewRegionExtractor(DefaultOptions())
	assert.Empty(t, e.ExtractRegions(make([]uint8, 100*100), 100, 100))
	assert.Empty(t, e.ExtractRegions(nil, 0, 0))
}
