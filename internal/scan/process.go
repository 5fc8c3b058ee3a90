package scan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/MeKo-Tech/shelfscan/internal/catalog"
	"github.com/MeKo-Tech/shelfscan/internal/classify"
	"github.com/MeKo-Tech/shelfscan/internal/extract"
	"github.com/MeKo-Tech/shelfscan/internal/utils"
)

// scanState accumulates intermediate results across pipeline stages.
type scanState struct {
	scanType   string
	confidence float64
	barcode    *string
	texts      []string
	prices     []float64
	preds      []classify.Prediction
	category   catalog.Category
}

// ProcessImage runs the full pipeline over a decoded image: barcode,
// then QR, then text recognition, then classification, then field
// assembly. Recognition always falls through to text and classification
// so every text source contributes to price and name extraction.
func (s *Scanner) ProcessImage(ctx context.Context, img image.Image) (*ScanResult, error) {
	if img == nil {
		return nil, errors.New("input image is nil")
	}

	st := &scanState{scanType: TypeImage, confidence: ConfidencePlaceholder}

	if err := s.runSymbols(ctx, img, st); err != nil {
		return nil, err
	}
	if err := s.runText(ctx, img, st); err != nil {
		return nil, err
	}
	if err := s.runClassifier(ctx, img, st); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.assemble(st), nil
}

// ProcessBytes decodes raw image bytes and scans the result.
func (s *Scanner) ProcessBytes(ctx context.Context, data []byte) (*ScanResult, error) {
	img, format, err := utils.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	slog.Debug("decoded scan input", "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return s.ProcessImage(ctx, img)
}

// runSymbols tries the linear barcode first and falls back to QR.
// A hit fixes the scan type, confidence and barcode value; recognition
// still continues through the later stages.
func (s *Scanner) runSymbols(ctx context.Context, img image.Image, st *scanState) error {
	det, err := s.barcode.Detect(ctx, img)
	if err != nil {
		return fmt.Errorf("barcode stage: %w", err)
	}
	if det.Found {
		slog.Debug("barcode found", "format", det.Format)
		st.scanType = TypeBarcode
		st.confidence = ConfidenceBarcode
		payload := det.Payload
		st.barcode = &payload
		st.texts = append(st.texts, det.Payload)
		return nil
	}

	det, err = s.qr.Detect(ctx, img)
	if err != nil {
		return fmt.Errorf("qr stage: %w", err)
	}
	if det.Found {
		slog.Debug("qr code found")
		st.scanType = TypeQRCode
		st.confidence = ConfidenceQRCode
		payload := det.Payload
		st.barcode = &payload
		st.texts = append(st.texts, det.Payload)
	}
	return nil
}

// runText recognizes label text and extracts prices from everything
// collected so far, symbol payloads included.
func (s *Scanner) runText(ctx context.Context, img image.Image, st *scanState) error {
	fragments, err := s.recognizer.Recognize(ctx, img)
	if err != nil {
		return fmt.Errorf("text stage: %w", err)
	}
	for _, f := range fragments {
		st.texts = append(st.texts, f.Text)
	}
	st.prices = extract.ExtractPrices(st.texts)
	slog.Debug("text stage done", "fragments", len(fragments), "prices", len(st.prices))
	return nil
}

// runClassifier classifies the image and resolves the taxonomy category.
// Classifier confidence only takes over on the image path; symbol scans
// keep their fixed confidence.
func (s *Scanner) runClassifier(ctx context.Context, img image.Image, st *scanState) error {
	preds, err := s.classifier.Classify(ctx, img)
	if err != nil {
		return fmt.Errorf("classify stage: %w", err)
	}
	st.preds = preds

	if st.scanType == TypeImage && len(preds) > 0 {
		st.confidence = preds[0].Score
	}

	labels := make([]string, len(preds))
	for i, p := range preds {
		labels[i] = p.Label
	}
	st.category = catalog.ResolveCategory(labels)
	slog.Debug("classify stage done", "predictions", len(preds), "category", st.category.Name)
	return nil
}

// assemble derives the final catalog record from the accumulated state.
func (s *Scanner) assemble(st *scanState) *ScanResult {
	// The category name joins the text pool so it can stand in as the
	// product name when nothing better was recognized.
	st.texts = append(st.texts, st.category.Name)

	result := &ScanResult{
		Type:              st.scanType,
		ActualPrice:       0,
		StockQuantity:     catalog.SuggestStockQuantity(st.category),
		LowStockThreshold: catalog.LowStockThreshold(st.category),
		Barcode:           st.barcode,
		CategoryID:        st.category.ID,
		TagNames:          s.tagNames(st),
		Confidence:        st.confidence,
		AdditionalInfo: AdditionalInfo{
			Predictions:   st.preds,
			OCRFoundPrice: len(st.prices) > 0,
		},
		TextFound: st.texts,
	}
	if result.AdditionalInfo.Predictions == nil {
		result.AdditionalInfo.Predictions = []classify.Prediction{}
	}

	if name := extract.ProductName(st.texts); name != "" {
		result.Name = &name
	}
	suggested, actual := extract.SelectPrices(st.prices)
	if len(st.prices) > 1 {
		result.SuggestedPrice = &suggested
	}
	result.ActualPrice = actual

	return result
}

// tagNames builds the tag list: the category name plus the top two
// prediction labels, lowercased and deduplicated in insertion order.
func (s *Scanner) tagNames(st *scanState) []string {
	tags := []string{strings.ToLower(st.category.Name)}
	seen := map[string]bool{tags[0]: true}
	for i, p := range st.preds {
		if i >= 2 {
			break
		}
		label := strings.ToLower(p.Label)
		if !seen[label] {
			seen[label] = true
			tags = append(tags, label)
		}
	}
	return tags
}
