package models

import (
	"errors"
	"os"
	"path/filepath"
)

// Model name constants to avoid typos and ensure consistency.
const (
	// Image classification model (ImageNet-1k).
	ClassifierResNet50 = "resnet50_imagenet.onnx"

	// Text recognition model.
	RecognitionMobile = "crnn_mobile_rec.onnx"

	// Label and dictionary files.
	ImageNetLabels  = "imagenet_labels.txt"
	RecognitionDict = "rec_keys_en.txt"
)

// Model type categories for organized directory structure.
const (
	TypeClassification = "classification"
	TypeRecognition    = "recognition"
	TypeLabels         = "labels"
)

// Default models directory.
const DefaultModelsDir = "models"

// Environment variable for models directory override.
const EnvModelsDir = "SHELFSCAN_MODELS_DIR"

// findProjectRoot finds the project root by looking for go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.New("could not find project root (go.mod not found)")
}

// ModelInfo contains metadata about a model.
type ModelInfo struct {
	Name        string
	Type        string
	Description string
	Filename    string
}

// GetModelsDir returns the models directory path from various sources.
// Priority: 1. Explicit modelsDir parameter, 2. Environment variable, 3. Project root + default.
func GetModelsDir(modelsDir string) string {
	if modelsDir != "" {
		return modelsDir
	}
	if envDir := os.Getenv(EnvModelsDir); envDir != "" {
		return envDir
	}
	if root, err := findProjectRoot(); err == nil {
		return filepath.Join(root, DefaultModelsDir)
	}
	return DefaultModelsDir
}

// GetClassifierModelPath resolves the classifier model path under the models dir.
func GetClassifierModelPath(modelsDir, filename string) string {
	if filename == "" {
		filename = ClassifierResNet50
	}
	return filepath.Join(GetModelsDir(modelsDir), filename)
}

// GetRecognitionModelPath resolves the text recognition model path.
func GetRecognitionModelPath(modelsDir, filename string) string {
	if filename == "" {
		filename = RecognitionMobile
	}
	return filepath.Join(GetModelsDir(modelsDir), filename)
}

// GetLabelsPath resolves a labels/dictionary file path under the models dir.
func GetLabelsPath(modelsDir, filename string) string {
	return filepath.Join(GetModelsDir(modelsDir), filename)
}

// ListAvailableModels describes the models this application can use.
func ListAvailableModels() []ModelInfo {
	return []ModelInfo{
		{
			Name:        "ResNet-50 ImageNet",
			Type:        TypeClassification,
			Description: "Image classification over the ImageNet-1k label space",
			Filename:    ClassifierResNet50,
		},
		{
			Name:        "CRNN Mobile",
			Type:        TypeRecognition,
			Description: "Text line recognition with CTC decoding",
			Filename:    RecognitionMobile,
		},
	}
}
