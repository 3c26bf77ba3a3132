package analyzer

import (
	"gonum.org/v1/gonum/stat"
)

// laplacianVariance computes the variance of the second-derivative
// response over the grayscale image. Rough, lesioned surfaces raise the
// edge energy; smooth healthy tissue keeps it low.
func laplacianVariance(gray []uint8, width, height int) float64 {
	if width < 3 || height < 3 {
		return 0
	}

	// Laplacian kernel: [0, 1, 0; 1, -4, 1; 0, 1, 0]
	data := make([]float64, 0, (width-2)*(height-2))
	for y := 1; y < height-1; y++ {
		row := y * width
		for x := 1; x < width-1; x++ {
			center := float64(gray[row+x])
			top := float64(gray[row-width+x])
			bottom := float64(gray[row+width+x])
			left := float64(gray[row+x-1])
			right := float64(gray[row+x+1])
			data = append(data, -4*center+top+bottom+left+right)
		}
	}
	if len(data) == 0 {
		return 0
	}
	return stat.Variance(data, nil)
}
