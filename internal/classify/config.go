// Package classify runs ImageNet classification over product photographs
// as the fallback recognition stage.
package classify

import (
	"fmt"

	"github.com/MeKo-Tech/shelfscan/internal/models"
)

// Input geometry expected by the classifier model.
const (
	inputWidth  = 224
	inputHeight = 224
)

// ImageNet channel statistics applied after scaling pixels to [0, 1].
var (
	imageNetMean = [3]float32{0.485, 0.456, 0.406}
	imageNetStd  = [3]float32{0.229, 0.224, 0.225}
)

// Config holds classifier configuration.
type Config struct {
	ModelPath  string
	LabelsPath string
	NumThreads int
	TopK       int
}

// DefaultConfig returns the default classifier configuration.
func DefaultConfig() Config {
	return Config{
		ModelPath:  models.GetClassifierModelPath("", ""),
		LabelsPath: models.GetLabelsPath("", models.ImageNetLabels),
		NumThreads: 0,
		TopK:       3,
	}
}

// Validate checks configuration sanity.
func (c Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("model path is required")
	}
	if c.LabelsPath == "" {
		return fmt.Errorf("labels path is required")
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top-k must be positive, got %d", c.TopK)
	}
	return nil
}
