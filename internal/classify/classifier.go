package classify

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"sort"
	"sync"

	onnxrt "github.com/yalue/onnxruntime_go"

	"github.com/MeKo-Tech/shelfscan/internal/onnx"
	"github.com/MeKo-Tech/shelfscan/internal/utils"
)

// Prediction is a ranked classification result.
type Prediction struct {
	Label string  `json:"label"`
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Classifier runs an ImageNet classification model over product images.
// When the model or labels file is unavailable the classifier runs in
// degraded mode and returns no predictions.
type Classifier struct {
	config   Config
	session  *onnxrt.DynamicAdvancedSession
	labels   []string
	degraded bool
	mu       sync.Mutex
}

// NewClassifier creates a classifier from configuration. A missing
// model file degrades the classifier instead of failing, so the rest of
// the pipeline keeps working on symbol and text recognition alone.
func NewClassifier(config Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid classifier config: %w", err)
	}

	c := &Classifier{config: config}

	if _, err := os.Stat(config.ModelPath); err != nil {
		slog.Warn("classifier model unavailable, running degraded",
			"model", config.ModelPath, "error", err)
		c.degraded = true
		return c, nil
	}

	labels, err := LoadLabels(config.LabelsPath)
	if err != nil {
		slog.Warn("classifier labels unavailable, running degraded",
			"labels", config.LabelsPath, "error", err)
		c.degraded = true
		return c, nil
	}
	c.labels = labels

	session, _, _, err := onnx.NewSession(config.ModelPath, config.NumThreads)
	if err != nil {
		return nil, fmt.Errorf("classifier session: %w", err)
	}
	c.session = session

	slog.Info("classifier ready", "model", config.ModelPath, "labels", len(labels))
	return c, nil
}

// Degraded reports whether the classifier is running without a model.
func (c *Classifier) Degraded() bool { return c.degraded }

// Classify returns ranked predictions for the image, at most TopK.
// In degraded mode it returns an empty slice and a nil error.
func (c *Classifier) Classify(ctx context.Context, img image.Image) ([]Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.degraded {
		return nil, nil
	}
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}

	resized, err := utils.ResizeTo(img, inputWidth, inputHeight)
	if err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	data, err := utils.NormalizeImageMeanStd(resized, imageNetMean, imageNetStd)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	logits, err := c.run(data)
	if err != nil {
		return nil, err
	}

	probs := softmax(logits)
	return c.rank(probs), nil
}

// run executes the session. ONNX Runtime sessions are not safe for
// concurrent Run calls, so access is serialized.
func (c *Classifier) run(data []float32) ([]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := onnx.NewImageTensor(data, 3, inputHeight, inputWidth)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	input, err := onnxrt.NewTensor(onnxrt.NewShape(t.Shape...), t.Data)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	defer func() { _ = input.Destroy() }()

	outputs := []onnxrt.Value{nil}
	if err := c.session.Run([]onnxrt.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}

	out, ok := outputs[0].(*onnxrt.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type %T", outputs[0])
	}
	defer func() { _ = out.Destroy() }()

	raw := out.GetData()
	logits := make([]float32, len(raw))
	copy(logits, raw)
	return logits, nil
}

// rank converts class probabilities into labeled predictions sorted by
// descending score, capped at TopK.
func (c *Classifier) rank(probs []float32) []Prediction {
	n := len(probs)
	if len(c.labels) < n {
		n = len(c.labels)
	}
	preds := make([]Prediction, 0, n)
	for i := 0; i < n; i++ {
		preds = append(preds, Prediction{
			Label: c.labels[i],
			Index: i,
			Score: float64(probs[i]),
		})
	}
	sort.SliceStable(preds, func(i, j int) bool { return preds[i].Score > preds[j].Score })

	k := c.config.TopK
	if k > len(preds) {
		k = len(preds)
	}
	return preds[:k]
}

// Close releases the underlying session.
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		if err := c.session.Destroy(); err != nil {
			return err
		}
		c.session = nil
	}
	return nil
}

// softmax converts logits into a probability distribution.
func softmax(logits []float32) []float32 {
	if len(logits) == 0 {
		return nil
	}
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}
	var sum float64
	exps := make([]float64, len(logits))
	for i, v := range logits {
		exps[i] = math.Exp(float64(v - maxLogit))
		sum += exps[i]
	}
	out := make([]float32, len(logits))
	for i, e := range exps {
		out[i] = float32(e / sum)
	}
	return out
}
