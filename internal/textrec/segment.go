package textrec

import "image"

// Segmentation thresholds. A row counts as inked when it has at least
// minInkPixels pixels darker than inkThreshold; bands closer than
// mergeGap rows apart are merged.
const (
	inkThreshold  = 128
	minInkPixels  = 2
	mergeGap      = 3
	minBandHeight = 5
)

// SegmentLines locates horizontal text bands in a grayscale image using
// a row projection profile. Returned rectangles are in image coordinates,
// ordered top to bottom.
func SegmentLines(gray *image.Gray) []image.Rectangle {
	if gray == nil {
		return nil
	}
	bounds := gray.Bounds()
	height := bounds.Dy()
	width := bounds.Dx()
	if height == 0 || width == 0 {
		return nil
	}

	inked := make([]bool, height)
	for y := 0; y < height; y++ {
		count := 0
		row := (y * gray.Stride)
		for x := 0; x < width; x++ {
			if gray.Pix[row+x] < inkThreshold {
				count++
				if count >= minInkPixels {
					inked[y] = true
					break
				}
			}
		}
	}

	bands := collectBands(inked)
	bands = mergeClose(bands, mergeGap)

	var rects []image.Rectangle
	for _, b := range bands {
		if b[1]-b[0] < minBandHeight {
			continue
		}
		rects = append(rects, image.Rect(
			bounds.Min.X, bounds.Min.Y+b[0],
			bounds.Max.X, bounds.Min.Y+b[1],
		))
	}
	return rects
}

// collectBands turns the inked-row profile into [start, end) pairs.
func collectBands(inked []bool) [][2]int {
	var bands [][2]int
	start := -1
	for y, on := range inked {
		switch {
		case on && start < 0:
			start = y
		case !on && start >= 0:
			bands = append(bands, [2]int{start, y})
			start = -1
		}
	}
	if start >= 0 {
		bands = append(bands, [2]int{start, len(inked)})
	}
	return bands
}

// mergeClose joins bands separated by at most gap rows.
func mergeClose(bands [][2]int, gap int) [][2]int {
	if len(bands) < 2 {
		return bands
	}
	merged := [][2]int{bands[0]}
	for _, b := range bands[1:] {
		last := &merged[len(merged)-1]
		if b[0]-last[1] <= gap {
			last[1] = b[1]
			continue
		}
		merged = append(merged, b)
	}
	return merged
}
