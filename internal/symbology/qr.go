package symbology

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// QRDetector decodes QR codes.
type QRDetector struct {
	mu     sync.Mutex
	reader gozxing.Reader
	hints  map[gozxing.DecodeHintType]interface{}
}

// NewQRDetector builds a QR detector with exhaustive search enabled.
func NewQRDetector() *QRDetector {
	return &QRDetector{
		reader: qrcode.NewQRCodeReader(),
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Detect scans the image for a single QR code. A miss returns a zero
// Detection with a nil error.
func (d *QRDetector) Detect(ctx context.Context, img image.Image) (Detection, error) {
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
	result, err := d.reader.Decode(bmp, d.hints)
	d.reader.Reset()
	d.mu.Unlock()
	if err != nil {
		if isNotFound(err) {
			return NotFound, nil
		}
		return NotFound, fmt.Errorf("qr decode: %w", err)
	}

	return Detection{
		Found:   true,
		Payload: result.GetText(),
		Format:  result.GetBarcodeFormat().String(),
	}, nil
}
