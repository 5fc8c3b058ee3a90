package textrec

import (
	"context"
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

	cfg.ImageHeight = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MinConfidence = 1.5
	assert.Error(t, cfg.Validate())
}

func TestNewRecognizer_MissingModelDegrades(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.onnx")

	r, err := NewRecognizer(cfg)
	require.NoError(t, err)
	assert.True(t, r.Degraded())

	img := testutil.LabelImage([]string{"Cola $1.99"}, 160, 40)
	frags, err := r.Recognize(context.Background(), img)
	require.NoError(t, err)
	assert.Empty(t, frags)
}

func TestRecognize_ContextCanceled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.onnx")
	r, err := NewRecognizer(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Recognize(ctx, testutil.LabelImage(nil, 10, 10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n\nc\n"), 0o600))

	charset, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, []rune{'a', 'b', ' ', 'c'}, charset)
}

func TestLoadDictionary_MultiCharLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte("ab\n"), 0o600))

	_, err := LoadDictionary(path)
	assert.Error(t, err)
}

func TestLoadDictionary_Missing(t *testing.T) {
	_, err := LoadDictionary(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
