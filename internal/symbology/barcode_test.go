package symbology

import (
	"context"
	"image/color"
	"testing"

	"github.com/MeKo-Tech/shelfscan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarcodeDetector_EAN13RoundTrip(t *testing.T) {
	img := testutil.EAN13Image(t, "5901234123457", 400, 150)

	det := NewBarcodeDetector()
	result, err := det.Detect(context.Background(), img)
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, "5901234123457", result.Payload)
	assert.Equal(t, "EAN_13", result.Format)
}

func TestBarcodeDetector_BlankImage(t *testing.T) {
	img := testutil.CreateTestImage(200, 200, color.White)

	det := NewBarcodeDetector()
	result, err := det.Detect(context.Background(), img)
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Payload)
}

func TestBarcodeDetector_IgnoresQR(t *testing.T) {
	img := testutil.QRImage(t, "https://example.com/p/42", 256)

	det := NewBarcodeDetector()
	result, err := det.Detect(context.Background(), img)
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestBarcodeDetector_NilImage(t *testing.T) {
	det := NewBarcodeDetector()
	_, err := det.Detect(context.Background(), nil)
	assert.Error(t, err)
}

func TestBarcodeDetector_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	det := NewBarcodeDetector()
	img := testutil.CreateTestImage(10, 10, color.White)
	_, err := det.Detect(ctx, img)
	assert.ErrorIs(t, err, context.Canceled)
}
