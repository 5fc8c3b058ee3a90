// Package symbology decodes machine-readable symbols (1D barcodes and
// QR codes) from product photographs.
package symbology

import (
	"context"
	"image"
)

// Detection is the tagged outcome of a symbol scan. Found distinguishes
// a clean miss from a hit; decode failures are reported as errors, not
// as empty detections. A hit carries a single payload: the gozxing
// readers decode one symbol per image, so additional symbols in the
// frame are not reported.
type Detection struct {
	Found   bool
	Payload string
	Format  string
}

// NotFound is the canonical miss result.
var NotFound = Detection{}

// Detector scans an image for one kind of symbol.
type Detector interface {
	Detect(ctx context.Context, img image.Image) (Detection, error)
}
