package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"

	"github.com/MeKo-Tech/shelfscan/internal/catalog"
	"github.com/MeKo-Tech/shelfscan/internal/utils"
	"github.com/MeKo-Tech/shelfscan/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding health response: %v\n", err)
	}
}

// categoriesHandler returns the product taxonomy with stock policies.
func (s *Server) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cats := catalog.Categories()
	list := make([]CategoryInfo, len(cats))
	for i, c := range cats {
		list[i] = CategoryInfo{
			ID:                c.ID,
			Name:              c.Name,
			StockQuantity:     catalog.SuggestStockQuantity(c),
			LowStockThreshold: catalog.LowStockThreshold(c),
		}
	}

	response := CategoriesResponse{Categories: list, Count: len(list)}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding categories response: %v\n", err)
	}
}

// scanImageHandler processes product image scan requests.
func (s *Server) scanImageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	img, ok := s.parseImageUpload(w, r)
	if !ok {
		scanRequestsTotal.WithLabelValues("http", "error").Inc()
		return // error already written
	}

	if s.scanner == nil {
		s.writeErrorResponse(w, "scan pipeline not initialized", http.StatusServiceUnavailable)
		scanRequestsTotal.WithLabelValues("http", "error").Inc()
		return
	}

	ctx := r.Context()
	if s.timeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.timeoutSec)*time.Second)
		defer cancel()
	}

	start := time.Now()
	res, err := s.scanner.ProcessImage(ctx, img)
	duration := time.Since(start)

	if err != nil {
		scanRequestsTotal.WithLabelValues("http", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("scan processing failed: %v", err), http.StatusInternalServerError)
		return
	}

	scanRequestsTotal.WithLabelValues("http", "success").Inc()
	scanProcessingDuration.WithLabelValues("http").Observe(duration.Seconds())
	observeResult(&scanResultMetrics{scanType: res.Type, fragments: len(res.TextFound)})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding scan response: %v\n", err)
	}
}

// parseImageUpload extracts and decodes the multipart image upload.
// On failure the HTTP error has already been written.
func (s *Server) parseImageUpload(w http.ResponseWriter, r *http.Request) (image.Image, bool) {
	maxBytes := s.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "too large") {
			s.writeErrorResponse(w, "file too large", http.StatusRequestEntityTooLarge)
		} else {
			s.writeErrorResponse(w, "failed to parse form data", http.StatusBadRequest)
		}
		return nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeErrorResponse(w, "no image file provided", http.StatusBadRequest)
		return nil, false
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxBytes {
		s.writeErrorResponse(w, "file too large", http.StatusRequestEntityTooLarge)
		return nil, false
	}
	uploadSizeBytes.Observe(float64(header.Size))

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeErrorResponse(w, "failed to read image data", http.StatusInternalServerError)
		return nil, false
	}

	img, _, err := utils.DecodeImage(data)
	if err != nil {
		s.writeErrorResponse(w, "invalid image format", http.StatusBadRequest)
		return nil, false
	}
	return img, true
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ScanResponse{Success: false, Error: message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing error response: %v\n", err)
	}
}
