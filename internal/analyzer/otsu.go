package analyzer

// otsuThreshold picks the gray threshold maximizing between-class
// variance over the histogram. Pixels strictly above the returned value
// are foreground, matching the binary+Otsu segmentation used to
// separate leaf tissue from background.
func otsuThreshold(hist *[256]int, total int) uint8 {
	if total <= 0 {
		return 0
	}

	var sum float64
	for v := 0; v < 256; v++ {
		sum += float64(v) * float64(hist[v])
	}

	var (
		sumBack    float64
		weightBack int
		maxVar     float64
		best       uint8
	)
	for t := 0; t < 256; t++ {
		weightBack += hist[t]
		if weightBack == 0 {
			continue
		}
		weightFore := total - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(t) * float64(hist[t])

		meanBack := sumBack / float64(weightBack)
		meanFore := (sum - sumBack) / float64(weightFore)
		diff := meanBack - meanFore
		betweenVar := float64(weightBack) * float64(weightFore) * diff * diff
		if betweenVar > maxVar {
			maxVar = betweenVar
			best = uint8(t)
		}
	}
	return best
}
