package analyzer

// Binary morphology over 0/1 masks with a square structuring element.
// Close (dilate then erode) fills small gaps in disease blobs; open
// (erode then dilate) removes speckle noise. Windows are clamped at the
// image border.

func dilate(mask []uint8, width, height, kernel int) []uint8 {
	r := kernel / 2
	out := make([]uint8, len(mask))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if anyInWindow(mask, width, height, x, y, r) {
				out[y*width+x] = 1
			}
		}
	}
	return out
}

func erode(mask []uint8, width, height, kernel int) []uint8 {
	r := kernel / 2
	out := make([]uint8, len(mask))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if allInWindow(mask, width, height, x, y, r) {
				out[y*width+x] = 1
			}
		}
	}
	return out
}

func morphClose(mask []uint8, width, height, kernel int) []uint8 {
	return erode(dilate(mask, width, height, kernel), width, height, kernel)
}

func morphOpen(mask []uint8, width, height, kernel int) []uint8 {
	return dilate(erode(mask, width, height, kernel), width, height, kernel)
}

func anyInWindow(mask []uint8, width, height, x, y, r int) bool {
	for dy := -r; dy <= r; dy++ {
		ny := y + dy
		if ny < 0 || ny >= height {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			nx := x + dx
			if nx < 0 || nx >= width {
				continue
			}
			if mask[ny*width+nx] != 0 {
				return true
			}
		}
	}
	return false
}

func allInWindow(mask []uint8, width, height, x, y, r int) bool {
	for dy := -r; dy <= r; dy++ {
		ny := y + dy
		if ny < 0 || ny >= height {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			nx := x + dx
			if nx < 0 || nx >= width {
				continue
			}
			if mask[ny*width+nx] == 0 {
				return false
			}
		}
	}
	return true
}
