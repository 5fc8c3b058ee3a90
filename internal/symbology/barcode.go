package symbology

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// BarcodeDetector decodes linear (1D) product barcodes such as EAN-13,
// EAN-8, UPC-A and Code 128. gozxing decodes one symbol per pass, so a
// hit carries exactly one payload even when the photograph shows
// several barcodes; the first reader to decode wins.
type BarcodeDetector struct {
	mu      sync.Mutex
	readers []gozxing.Reader
	hints   map[gozxing.DecodeHintType]interface{}
}

// NewBarcodeDetector builds a detector covering the common retail
// symbologies with exhaustive search enabled.
func NewBarcodeDetector() *BarcodeDetector {
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
		gozxing.DecodeHintType_POSSIBLE_FORMATS: []gozxing.BarcodeFormat{
			gozxing.BarcodeFormat_EAN_13,
			gozxing.BarcodeFormat_EAN_8,
			gozxing.BarcodeFormat_UPC_A,
			gozxing.BarcodeFormat_UPC_E,
			gozxing.BarcodeFormat_CODE_128,
			gozxing.BarcodeFormat_CODE_39,
			gozxing.BarcodeFormat_ITF,
			gozxing.BarcodeFormat_CODABAR,
		},
	}
	return &BarcodeDetector{
		readers: []gozxing.Reader{
			oned.NewMultiFormatUPCEANReader(hints),
			oned.NewCode128Reader(),
			oned.NewCode39Reader(),
			oned.NewITFReader(),
			oned.NewCodaBarReader(),
		},
		hints: hints,
	}
}

// Detect scans the image for a single linear barcode, trying each
// symbology reader in turn. A miss returns a zero Detection with a nil
// error.
func (d *BarcodeDetector) Detect(ctx context.Context, img image.Image) (Detection, error) {
	if err := ctx.Err(); err != nil {
		return NotFound, err
	}
	if img == nil {
		return NotFound, errors.New("nil image")
	}

	bmp, err := newBinaryBitmap(img)
	if err != nil {
		return NotFound, fmt.Errorf("binarize: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, reader := range d.readers {
		result, err := reader.Decode(bmp, d.hints)
		reader.Reset()
		if err != nil {
			if isReaderMiss(err) {
				continue
			}
			return NotFound, fmt.Errorf("barcode decode: %w", err)
		}
		return Detection{
			Found:   true,
			Payload: result.GetText(),
			Format:  result.GetBarcodeFormat().String(),
		}, nil
	}
	return NotFound, nil
}

// newBinaryBitmap converts an image to the binarized form gozxing
// readers operate on.
func newBinaryBitmap(img image.Image) (*gozxing.BinaryBitmap, error) {
	source := gozxing.NewLuminanceSourceFromImage(img)
	return gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(source))
}

// isNotFound reports whether the decode error signals "no symbol in
// this image" rather than a genuine failure.
func isNotFound(err error) bool {
	var nfe gozxing.NotFoundException
	return errors.As(err, &nfe)
}

// isReaderMiss reports whether a decode error means the reader saw no
// valid symbol of its formats. Format and checksum errors from one
// symbology must not abort the remaining readers.
func isReaderMiss(err error) bool {
	var re gozxing.ReaderException
	return errors.As(err, &re)
}
