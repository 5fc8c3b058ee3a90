package onnx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageTensor(t *testing.T) {
	data := make([]float32, 3*4*5)
	tensor, err := NewImageTensor(data, 3, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4, 5}, tensor.Shape)
	assert.NoError(t, VerifyImageTensor(tensor))
}

func TestNewImageTensor_LengthMismatch(t *testing.T) {
	_, err := NewImageTensor(make([]float32, 10), 3, 4, 5)
	assert.Error(t, err)
}

func TestNewImageTensor_NilData(t *testing.T) {
	_, err := NewImageTensor(nil, 3, 4, 5)
	assert.Error(t, err)
}

func TestValidateNCHW(t *testing.T) {
	assert.NoError(t, ValidateNCHW([]int64{1, 3, 224, 224}))
	assert.Error(t, ValidateNCHW([]int64{1, 3, 224}))
	assert.Error(t, ValidateNCHW([]int64{1, 0, 224, 224}))
}

func TestTensorStats(t *testing.T) {
	minV, maxV, mean := TensorStats([]float32{1, 2, 3})
	assert.InDelta(t, 1.0, float64(minV), 1e-6)
	assert.InDelta(t, 3.0, float64(maxV), 1e-6)
	assert.InDelta(t, 2.0, float64(mean), 1e-6)

	minV, maxV, mean = TensorStats(nil)
	assert.Zero(t, minV)
	assert.Zero(t, maxV)
	assert.Zero(t, mean)
}
