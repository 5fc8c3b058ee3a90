package classify

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/shelfscan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.TopK = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ModelPath = ""
	assert.Error(t, cfg.Validate())
}

func TestNewClassifier_MissingModelDegrades(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.onnx")

	c, err := NewClassifier(cfg)
	require.NoError(t, err)
	assert.True(t, c.Degraded())

	preds, err := c.Classify(context.Background(), testutil.CreateTestImage(8, 8, color.White))
	require.NoError(t, err)
	assert.Empty(t, preds)
}

func TestClassify_ContextCanceled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.onnx")
	c, err := NewClassifier(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Classify(ctx, testutil.CreateTestImage(8, 8, color.White))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("tench\n\ngoldfish\nhammerhead\n"), 0o600))

	labels, err := LoadLabels(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"tench", "goldfish", "hammerhead"}, labels)
}

func TestLoadLabels_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o600))

	_, err := LoadLabels(path)
	assert.Error(t, err)
}

func TestLoadLabels_Missing(t *testing.T) {
	_, err := LoadLabels(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestRank_TopKAndOrder(t *testing.T) {
	c := &Classifier{
		config: Config{TopK: 2},
		labels: []string{"a", "b", "c"},
	}
	preds := c.rank([]float32{0.1, 0.7, 0.2})
	require.Len(t, preds, 2)
	assert.Equal(t, "b", preds[0].Label)
	assert.Equal(t, 1, preds[0].Index)
	assert.Equal(t, "c", preds[1].Label)
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{1, 2, 3})
	require.Len(t, probs, 3)

	var sum float64
	for _, p := range probs {
		sum += float64(p)
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
	assert.Greater(t, probs[2], probs[1])
	assert.Greater(t, probs[1], probs[0])

	assert.Nil(t, softmax(nil))
}
