// Package server exposes the scan pipeline over HTTP and WebSocket.
package server

import (
	"context"
	"image"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/shelfscan/internal/scan"
)

// scannerInterface defines the methods needed by the server from a scanner.
type scannerInterface interface {
	ProcessImage(ctx context.Context, img image.Image) (*scan.ScanResult, error)
	Close() error
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	scanner     scannerInterface
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	rateLimiter *RateLimiter
}

// RateLimitConfig holds request throttling configuration. Zero values
// disable the corresponding limit.
type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	MaxRequestsPerDay int
	MaxDataPerDayMB   int64
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	TimeoutSec  int
	ScanConfig  scan.Config
	RateLimit   RateLimitConfig
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// CategoryInfo describes one taxonomy entry for clients.
type CategoryInfo struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	StockQuantity     int    `json:"stock_quantity"`
	LowStockThreshold *int   `json:"low_stock_threshold"`
}

// CategoriesResponse lists the product taxonomy.
type CategoriesResponse struct {
	Categories []CategoryInfo `json:"categories"`
	Count      int            `json:"count"`
}

// ScanResponse wraps a scan result or an error.
type ScanResponse struct {
	Success bool             `json:"success"`
	Result  *scan.ScanResult `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// NewServer creates a new scan server instance.
func NewServer(config Config) (*Server, error) {
	cfg := config.ScanConfig

	nb := scan.NewBuilder().WithModelsDir(cfg.ModelsDir)
	if cfg.Classifier.ModelPath != "" {
		nb = nb.WithClassifierModelPath(cfg.Classifier.ModelPath)
	}
	if cfg.Classifier.LabelsPath != "" {
		nb = nb.WithLabelsPath(cfg.Classifier.LabelsPath)
	}
	if cfg.Recognizer.ModelPath != "" {
		nb = nb.WithRecognizerModelPath(cfg.Recognizer.ModelPath)
	}
	if cfg.Recognizer.DictPath != "" {
		nb = nb.WithDictionaryPath(cfg.Recognizer.DictPath)
	}
	nb = nb.WithThreads(cfg.Classifier.NumThreads).
		WithTopK(cfg.Classifier.TopK).
		WithMinTextConfidence(cfg.Recognizer.MinConfidence)

	sc, err := nb.Build()
	if err != nil {
		return nil, err
	}

	var limiter *RateLimiter
	rl := config.RateLimit
	if rl.RequestsPerMinute > 0 || rl.RequestsPerHour > 0 || rl.MaxRequestsPerDay > 0 || rl.MaxDataPerDayMB > 0 {
		limiter = NewRateLimiter(rl.RequestsPerMinute, rl.RequestsPerHour,
			rl.MaxRequestsPerDay, rl.MaxDataPerDayMB*1024*1024)
	}

	return &Server{
		scanner:     sc,
		corsOrigin:  config.CORSOrigin,
		maxUploadMB: config.MaxUploadMB,
		timeoutSec:  config.TimeoutSec,
		rateLimiter: limiter,
	}, nil
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.scanner != nil {
		return s.scanner.Close()
	}
	return nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/categories", s.corsMiddleware(s.categoriesHandler))
	mux.HandleFunc("/scan/image", s.corsMiddleware(s.rateLimitMiddleware(s.scanImageHandler)))
	mux.HandleFunc("/scan/ws", s.scanWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
