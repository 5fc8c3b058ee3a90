package scan

import (
	"fmt"

	"github.com/MeKo-Tech/shelfscan/internal/classify"
	"github.com/MeKo-Tech/shelfscan/internal/models"
	"github.com/MeKo-Tech/shelfscan/internal/symbology"
	"github.com/MeKo-Tech/shelfscan/internal/textrec"
)

// Config holds configuration for the scan pipeline and its components.
type Config struct {
	ModelsDir  string
	Classifier classify.Config
	Recognizer textrec.Config
}

// DefaultConfig returns a default pipeline config with component defaults.
func DefaultConfig() Config {
	return Config{
		ModelsDir:  models.GetModelsDir(""),
		Classifier: classify.DefaultConfig(),
		Recognizer: textrec.DefaultConfig(),
	}
}

// Builder constructs a Scanner with fluent configuration.
type Builder struct {
	cfg Config
}

// NewBuilder creates a new scanner builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithModelsDir sets the models directory and updates component model paths.
func (b *Builder) WithModelsDir(dir string) *Builder {
	if dir != "" {
		b.cfg.ModelsDir = dir
	}
	b.cfg.Classifier.ModelPath = models.GetClassifierModelPath(b.cfg.ModelsDir, "")
	b.cfg.Classifier.LabelsPath = models.GetLabelsPath(b.cfg.ModelsDir, models.ImageNetLabels)
	b.cfg.Recognizer.ModelPath = models.GetRecognitionModelPath(b.cfg.ModelsDir, "")
	b.cfg.Recognizer.DictPath = models.GetLabelsPath(b.cfg.ModelsDir, models.RecognitionDict)
	return b
}

// WithClassifierModelPath overrides the classifier model path directly.
func (b *Builder) WithClassifierModelPath(path string) *Builder {
	if path != "" {
		b.cfg.Classifier.ModelPath = path
	}
	return b
}

// WithLabelsPath overrides the classifier labels path directly.
func (b *Builder) WithLabelsPath(path string) *Builder {
	if path != "" {
		b.cfg.Classifier.LabelsPath = path
	}
	return b
}

// WithRecognizerModelPath overrides the recognition model path directly.
func (b *Builder) WithRecognizerModelPath(path string) *Builder {
	if path != "" {
		b.cfg.Recognizer.ModelPath = path
	}
	return b
}

// WithDictionaryPath overrides the recognition dictionary path directly.
func (b *Builder) WithDictionaryPath(path string) *Builder {
	if path != "" {
		b.cfg.Recognizer.DictPath = path
	}
	return b
}

// WithThreads sets intra-op thread counts for both models (if >0).
func (b *Builder) WithThreads(n int) *Builder {
	if n > 0 {
		b.cfg.Classifier.NumThreads = n
		b.cfg.Recognizer.NumThreads = n
	}
	return b
}

// WithTopK sets how many classifier predictions to keep.
func (b *Builder) WithTopK(k int) *Builder {
	if k > 0 {
		b.cfg.Classifier.TopK = k
	}
	return b
}

// WithMinTextConfidence sets the recognition confidence floor.
func (b *Builder) WithMinTextConfidence(th float64) *Builder {
	if th > 0 {
		b.cfg.Recognizer.MinConfidence = th
	}
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Validate checks configuration sanity for all components.
func (b *Builder) Validate() error {
	if err := b.cfg.Classifier.Validate(); err != nil {
		return err
	}
	return b.cfg.Recognizer.Validate()
}

// Scanner runs the full recognition pipeline over product images.
type Scanner struct {
	cfg        Config
	barcode    SymbolDetector
	qr         SymbolDetector
	recognizer TextRecognizer
	classifier Classifier

	closers []func() error
}

// Build initializes the scan pipeline components. Missing model files
// degrade the corresponding stage instead of failing the build.
func (b *Builder) Build() (*Scanner, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	rec, err := textrec.NewRecognizer(b.cfg.Recognizer)
	if err != nil {
		return nil, fmt.Errorf("init recognizer: %w", err)
	}
	cls, err := classify.NewClassifier(b.cfg.Classifier)
	if err != nil {
		_ = rec.Close()
		return nil, fmt.Errorf("init classifier: %w", err)
	}

	return &Scanner{
		cfg:        b.cfg,
		barcode:    symbology.NewBarcodeDetector(),
		qr:         symbology.NewQRDetector(),
		recognizer: rec,
		classifier: cls,
		closers:    []func() error{rec.Close, cls.Close},
	}, nil
}

// Config returns the scanner configuration.
func (s *Scanner) Config() Config { return s.cfg }

// Close releases all model resources.
func (s *Scanner) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}
