package textrec

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"

	onnxrt "github.com/yalue/onnxruntime_go"

	"github.com/MeKo-Tech/shelfscan/internal/onnx"
	"github.com/MeKo-Tech/shelfscan/internal/utils"
)

// Fragment is one recognized line of text.
type Fragment struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Recognizer extracts text fragments from product photographs. When the
// model or dictionary is unavailable it runs in degraded mode and
// returns no fragments.
type Recognizer struct {
	config   Config
	session  *onnxrt.DynamicAdvancedSession
	charset  []rune
	degraded bool
	mu       sync.Mutex
}

// NewRecognizer creates a recognizer from configuration.
func NewRecognizer(config Config) (*Recognizer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recognizer config: %w", err)
	}

	r := &Recognizer{config: config}

	if _, err := os.Stat(config.ModelPath); err != nil {
		slog.Warn("recognition model unavailable, running degraded",
			"model", config.ModelPath, "error", err)
		r.degraded = true
		return r, nil
	}

	charset, err := LoadDictionary(config.DictPath)
	if err != nil {
		slog.Warn("recognition dictionary unavailable, running degraded",
			"dictionary", config.DictPath, "error", err)
		r.degraded = true
		return r, nil
	}
	r.charset = charset

	session, _, _, err := onnx.NewSession(config.ModelPath, config.NumThreads)
	if err != nil {
		return nil, fmt.Errorf("recognizer session: %w", err)
	}
	r.session = session

	slog.Info("text recognizer ready", "model", config.ModelPath, "charset", len(charset))
	return r, nil
}

// Degraded reports whether the recognizer is running without a model.
func (r *Recognizer) Degraded() bool { return r.degraded }

// Recognize locates text lines in the image and recognizes each one.
// Fragments are returned top to bottom; low-confidence fragments are
// dropped. In degraded mode it returns an empty slice and a nil error.
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) ([]Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.degraded {
		return nil, nil
	}
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}

	gray := utils.ToGray(img)
	bands := SegmentLines(gray)
	slog.Debug("segmented text lines", "count", len(bands))

	var fragments []Fragment
	for _, band := range bands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := utils.CropRect(img, band)
		text, conf, err := r.recognizeLine(line)
		if err != nil {
			return nil, err
		}
		text = CleanFragment(text)
		if text == "" || conf < r.config.MinConfidence {
			continue
		}
		fragments = append(fragments, Fragment{Text: text, Confidence: conf})
	}
	return fragments, nil
}

// recognizeLine runs the model on a single cropped line.
func (r *Recognizer) recognizeLine(line image.Image) (string, float64, error) {
	b := line.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return "", 0, nil
	}

	h := r.config.ImageHeight
	w := b.Dx() * h / b.Dy()
	if w < h {
		w = h
	}
	if w > r.config.MaxWidth {
		w = r.config.MaxWidth
	}

	resized, err := utils.ResizeTo(line, w, h)
	if err != nil {
		return "", 0, fmt.Errorf("resize line: %w", err)
	}
	data, err := utils.NormalizeImageMeanStd(resized,
		[3]float32{0.5, 0.5, 0.5}, [3]float32{0.5, 0.5, 0.5})
	if err != nil {
		return "", 0, fmt.Errorf("normalize line: %w", err)
	}

	probs, err := r.run(data, h, w)
	if err != nil {
		return "", 0, err
	}

	text, conf := DecodeGreedy(probs, r.charset)
	return text, conf, nil
}

// run executes the session and reshapes the output into per-timestep
// class probability rows.
func (r *Recognizer) run(data []float32, h, w int) ([][]float32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, err := onnx.NewImageTensor(data, 3, h, w)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	input, err := onnxrt.NewTensor(onnxrt.NewShape(t.Shape...), t.Data)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	defer func() { _ = input.Destroy() }()

	outputs := []onnxrt.Value{nil}
	if err := r.session.Run([]onnxrt.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}

	out, ok := outputs[0].(*onnxrt.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type %T", outputs[0])
	}
	defer func() { _ = out.Destroy() }()

	shape := out.GetShape()
	if len(shape) != 3 || shape[0] != 1 {
		return nil, fmt.Errorf("unexpected output shape %v", shape)
	}
	steps, classes := int(shape[1]), int(shape[2])

	raw := out.GetData()
	if len(raw) != steps*classes {
		return nil, fmt.Errorf("output length %d does not match shape %v", len(raw), shape)
	}

	probs := make([][]float32, steps)
	for t := 0; t < steps; t++ {
		row := make([]float32, classes)
		copy(row, raw[t*classes:(t+1)*classes])
		probs[t] = row
	}
	return probs, nil
}

// Close releases the underlying session.
func (r *Recognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != nil {
		if err := r.session.Destroy(); err != nil {
			return err
		}
		r.session = nil
	}
	return nil
}
