// Package textrec recognizes printed text on product labels. Lines are
// located with a projection profile and recognized by a CRNN model with
// greedy CTC decoding.
package textrec

import (
	"fmt"

	"github.com/MeKo-Tech/shelfscan/internal/models"
)

// Config holds text recognizer configuration.
type Config struct {
	ModelPath  string
	DictPath   string
	NumThreads int

	// ImageHeight is the fixed input height of the recognition model.
	ImageHeight int

	// MaxWidth caps the resized line width to bound inference cost.
	MaxWidth int

	// MinConfidence drops fragments below this score.
	MinConfidence float64
}

// DefaultConfig returns the default recognizer configuration.
func DefaultConfig() Config {
	return Config{
		ModelPath:     models.GetRecognitionModelPath("", ""),
		DictPath:      models.GetLabelsPath("", models.RecognitionDict),
		NumThreads:    0,
		ImageHeight:   32,
		MaxWidth:      512,
		MinConfidence: 0.3,
	}
}

// Validate checks configuration sanity.
func (c Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("model path is required")
	}
	if c.DictPath == "" {
		return fmt.Errorf("dictionary path is required")
	}
	if c.ImageHeight <= 0 {
		return fmt.Errorf("image height must be positive, got %d", c.ImageHeight)
	}
	if c.MaxWidth <= 0 {
		return fmt.Errorf("max width must be positive, got %d", c.MaxWidth)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be in [0, 1], got %f", c.MinConfidence)
	}
	return nil
}
