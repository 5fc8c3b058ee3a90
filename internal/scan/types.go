// Package scan wires symbol detection, text recognition and image
// classification into a single product scan pipeline producing catalog
// records.
package scan

import (
	"context"
	"image"

	"github.com/MeKo-Tech/shelfscan/internal/classify"
	"github.com/MeKo-Tech/shelfscan/internal/symbology"
	"github.com/MeKo-Tech/shelfscan/internal/textrec"
)

// Scan types, in order of preference.
const (
	TypeBarcode = "barcode"
	TypeQRCode  = "qrcode"
	TypeImage   = "image"
)

// Confidence assigned per recognition path. Symbol decodes carry fixed
// confidence; the image path takes the top classifier score, falling
// back to a neutral placeholder when no prediction is available.
const (
	ConfidenceBarcode     = 0.95
	ConfidenceQRCode      = 0.90
	ConfidencePlaceholder = 0.5
)

// SymbolDetector scans an image for one kind of machine-readable symbol.
type SymbolDetector interface {
	Detect(ctx context.Context, img image.Image) (symbology.Detection, error)
}

// TextRecognizer extracts text fragments from an image.
type TextRecognizer interface {
	Recognize(ctx context.Context, img image.Image) ([]textrec.Fragment, error)
}

// Classifier returns ranked label predictions for an image.
type Classifier interface {
	Classify(ctx context.Context, img image.Image) ([]classify.Prediction, error)
}

// AdditionalInfo carries diagnostic detail alongside the main record.
type AdditionalInfo struct {
	Predictions   []classify.Prediction `json:"predictions" yaml:"predictions"`
	OCRFoundPrice bool                  `json:"ocr_found_price" yaml:"ocr_found_price"`
}

// ScanResult is the structured catalog record produced for one image.
// Nullable fields are pointers and serialize as explicit JSON nulls.
type ScanResult struct {
	Type              string         `json:"type" yaml:"type"`
	Name              *string        `json:"name" yaml:"name"`
	SuggestedPrice    *float64       `json:"suggested_price" yaml:"suggested_price"`
	ActualPrice       float64        `json:"actual_price" yaml:"actual_price"`
	StockQuantity     int            `json:"stock_quantity" yaml:"stock_quantity"`
	LowStockThreshold *int           `json:"low_stock_threshold" yaml:"low_stock_threshold"`
	Barcode           *string        `json:"barcode" yaml:"barcode"`
	CategoryID        int            `json:"category_id" yaml:"category_id"`
	TagNames          []string       `json:"tag_names" yaml:"tag_names"`
	Notes             *string        `json:"notes" yaml:"notes"`
	Confidence        float64        `json:"confidence" yaml:"confidence"`
	AdditionalInfo    AdditionalInfo `json:"additional_info" yaml:"additional_info"`
	TextFound         []string       `json:"text_found" yaml:"text_found"`
}
