package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestIsSupportedImage(t *testing.T) {
	assert.True(t, IsSupportedImage("photo.jpg"))
	assert.True(t, IsSupportedImage("PHOTO.PNG"))
	assert.False(t, IsSupportedImage("doc.pdf"))
	assert.False(t, IsSupportedImage("noext"))
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(4, 4, color.White)))

	img, format, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestDecodeImage_Empty(t *testing.T) {
	_, _, err := DecodeImage(nil)
	require.Error(t, err)

	var perr *ImageProcessingError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, "decode", perr.Operation)
}

func TestDecodeImage_Garbage(t *testing.T) {
	_, _, err := DecodeImage([]byte("not an image"))
	assert.Error(t, err)
}

func TestNormalizeImage(t *testing.T) {
	img := solidImage(2, 2, color.RGBA{R: 255, G: 0, B: 127, A: 255})
	data, err := NormalizeImage(img)
	require.NoError(t, err)
	require.Len(t, data, 3*2*2)

	// Channel planes: R first, then G, then B.
	assert.InDelta(t, 1.0, float64(data[0]), 1e-6)
	assert.InDelta(t, 0.0, float64(data[4]), 1e-6)
	assert.InDelta(t, 127.0/255.0, float64(data[8]), 1e-6)
}

func TestNormalizeImage_Nil(t *testing.T) {
	_, err := NormalizeImage(nil)
	assert.Error(t, err)
}

func TestNormalizeImageMeanStd(t *testing.T) {
	img := solidImage(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	mean := [3]float32{0.5, 0.5, 0.5}
	std := [3]float32{0.5, 0.5, 0.5}

	data, err := NormalizeImageMeanStd(img, mean, std)
	require.NoError(t, err)
	require.Len(t, data, 3)
	for _, v := range data {
		assert.InDelta(t, 1.0, float64(v), 1e-6)
	}
}

func TestNormalizeImageMeanStd_ZeroStd(t *testing.T) {
	img := solidImage(1, 1, color.White)
	_, err := NormalizeImageMeanStd(img, [3]float32{}, [3]float32{0.5, 0, 0.5})
	assert.Error(t, err)
}

func TestResizeTo(t *testing.T) {
	img := solidImage(10, 20, color.White)
	out, err := ResizeTo(img, 4, 8)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Bounds().Dx())
	assert.Equal(t, 8, out.Bounds().Dy())

	_, err = ResizeTo(img, 0, 8)
	assert.Error(t, err)
}

func TestToGray(t *testing.T) {
	img := solidImage(3, 3, color.RGBA{R: 10, G: 200, B: 30, A: 255})
	gray := ToGray(img)
	assert.Equal(t, img.Bounds(), gray.Bounds())

	// Idempotent for gray inputs.
	same := ToGray(gray)
	assert.Same(t, gray, same)
}

func TestCropRect(t *testing.T) {
	img := solidImage(10, 10, color.White)
	out := CropRect(img, image.Rect(2, 2, 6, 6))
	assert.Equal(t, 4, out.Bounds().Dx())

	empty := CropRect(img, image.Rect(20, 20, 30, 30))
	assert.Equal(t, 0, empty.Bounds().Dx())
}
