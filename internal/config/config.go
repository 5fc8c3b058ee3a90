package config

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/shelfscan/internal/classify"
	"github.com/MeKo-Tech/shelfscan/internal/models"
	"github.com/MeKo-Tech/shelfscan/internal/scan"
	"github.com/MeKo-Tech/shelfscan/internal/server"
	"github.com/MeKo-Tech/shelfscan/internal/textrec"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ModelsDir: models.DefaultModelsDir,
		LogLevel:  "info",
		Verbose:   false,
		Pipeline: PipelineConfig{
			Classifier: defaultClassifierConfig(),
			Recognizer: defaultRecognizerConfig(),
		},
		Output: OutputConfig{
			Format: "json",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     50,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
		},
	}
}

// defaultClassifierConfig returns default classifier configuration.
func defaultClassifierConfig() ClassifierConfig {
	cfg := classify.DefaultConfig()
	return ClassifierConfig{
		NumThreads: cfg.NumThreads,
		TopK:       cfg.TopK,
	}
}

// defaultRecognizerConfig returns default recognizer configuration.
func defaultRecognizerConfig() RecognizerConfig {
	cfg := textrec.DefaultConfig()
	return RecognizerConfig{
		ImageHeight:   cfg.ImageHeight,
		MaxWidth:      cfg.MaxWidth,
		MinConfidence: cfg.MinConfidence,
		NumThreads:    cfg.NumThreads,
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"json", "yaml"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}

	if err := validateThreshold(c.Pipeline.Recognizer.MinConfidence, "recognizer.min_confidence"); err != nil {
		return err
	}

	if c.Pipeline.Classifier.TopK <= 0 {
		return fmt.Errorf("invalid classifier top_k: %d (must be positive)", c.Pipeline.Classifier.TopK)
	}
	if c.Pipeline.Recognizer.ImageHeight <= 0 {
		return fmt.Errorf("invalid recognizer image height: %d (must be positive)", c.Pipeline.Recognizer.ImageHeight)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size: %d (must be positive)", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid timeout: %d (must be positive)", c.Server.TimeoutSec)
	}

	return nil
}

// ToScanConfig converts the config to the internal scan pipeline format.
func (c *Config) ToScanConfig() scan.Config {
	b := scan.NewBuilder().
		WithModelsDir(c.ModelsDir).
		WithClassifierModelPath(c.Pipeline.Classifier.ModelPath).
		WithLabelsPath(c.Pipeline.Classifier.LabelsPath).
		WithRecognizerModelPath(c.Pipeline.Recognizer.ModelPath).
		WithDictionaryPath(c.Pipeline.Recognizer.DictPath).
		WithThreads(c.Pipeline.Classifier.NumThreads).
		WithTopK(c.Pipeline.Classifier.TopK).
		WithMinTextConfidence(c.Pipeline.Recognizer.MinConfidence)
	return b.Config()
}

// ToServerConfig converts the config to the internal server format.
func (c *Config) ToServerConfig() server.Config {
	return server.Config{
		Host:        c.Server.Host,
		Port:        c.Server.Port,
		CORSOrigin:  c.Server.CORSOrigin,
		MaxUploadMB: c.Server.MaxUploadMB,
		TimeoutSec:  c.Server.TimeoutSec,
		ScanConfig:  c.ToScanConfig(),
		RateLimit: server.RateLimitConfig{
			RequestsPerMinute: c.Server.RateLimit.RequestsPerMinute,
			RequestsPerHour:   c.Server.RateLimit.RequestsPerHour,
			MaxRequestsPerDay: c.Server.RateLimit.MaxRequestsPerDay,
			MaxDataPerDayMB:   c.Server.RateLimit.MaxDataPerDayMB,
		},
	}
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// validateThreshold validates that a value is between 0.0 and 1.0.
func validateThreshold(value float64, name string) error {
	if value < 0.0 || value > 1.0 {
		return fmt.Errorf("invalid %s: %.2f (must be between 0.0 and 1.0)", name, value)
	}
	return nil
}
