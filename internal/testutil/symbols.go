package testutil

import (
	"image"
	"image/color"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	qr "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/require"
)

// QRImage renders a QR code carrying the given payload.
func QRImage(t *testing.T, payload string, size int) image.Image {
	t.Helper()
	code, err := qr.New(payload, qr.Medium)
	require.NoError(t, err)
	return code.Image(size)
}

// EAN13Image renders an EAN-13 barcode for a 13-digit value.
func EAN13Image(t *testing.T, digits string, width, height int) image.Image {
	t.Helper()
	matrix, err := oned.NewEAN13Writer().Encode(digits, gozxing.BarcodeFormat_EAN_13, width, height, nil)
	require.NoError(t, err)
	return bitMatrixImage(matrix)
}

// bitMatrixImage rasterizes an encoder bit matrix to a grayscale image.
func bitMatrixImage(m *gozxing.BitMatrix) image.Image {
	img := image.NewGray(image.Rect(0, 0, m.GetWidth(), m.GetHeight()))
	for y := 0; y < m.GetHeight(); y++ {
		for x := 0; x < m.GetWidth(); x++ {
			c := color.Gray{Y: 255}
			if m.Get(x, y) {
				c = color.Gray{Y: 0}
			}
			img.SetGray(x, y, c)
		}
	}
	return img
}
