package onnx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	onnxrt "github.com/yalue/onnxruntime_go"
)

// EnsureInitialized locates the ONNX Runtime shared library and initializes
// the environment. Safe to call from multiple adapters; initialization only
// happens once per process.
func EnsureInitialized() error {
	if onnxrt.IsInitialized() {
		return nil
	}
	if err := setLibraryPath(); err != nil {
		return fmt.Errorf("onnx lib path: %w", err)
	}
	if err := onnxrt.InitializeEnvironment(); err != nil {
		return fmt.Errorf("init onnx: %w", err)
	}
	return nil
}

// NewSession creates a dynamic session for a single-input, single-output model.
// The returned input info carries the expected NCHW dimensions when static.
func NewSession(modelPath string, numThreads int) (*onnxrt.DynamicAdvancedSession, onnxrt.InputOutputInfo, onnxrt.InputOutputInfo, error) {
	var none onnxrt.InputOutputInfo

	if modelPath == "" {
		return nil, none, none, errors.New("empty model path")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, none, none, err
	}
	if err := EnsureInitialized(); err != nil {
		return nil, none, none, err
	}

	inputs, outputs, err := onnxrt.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, none, none, fmt.Errorf("io info: %w", err)
	}
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, none, none, fmt.Errorf("unexpected io (in:%d out:%d)", len(inputs), len(outputs))
	}
	in, out := inputs[0], outputs[0]

	opts, err := onnxrt.NewSessionOptions()
	if err != nil {
		return nil, none, none, fmt.Errorf("session opts: %w", err)
	}
	defer func() {
		if err := opts.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying session options: %v\n", err)
		}
	}()
	if numThreads > 0 {
		_ = opts.SetIntraOpNumThreads(numThreads)
	}

	sess, err := onnxrt.NewDynamicAdvancedSession(modelPath, []string{in.Name}, []string{out.Name}, opts)
	if err != nil {
		return nil, none, none, fmt.Errorf("session: %w", err)
	}
	return sess, in, out, nil
}

// findProjectRoot finds the project root directory by looking for go.mod.
func findProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root := cwd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root, nil
		}
		parent := filepath.Dir(root)
		if parent == root {
			return "", errors.New("could not find project root")
		}
		root = parent
	}
}

// libName returns the appropriate library filename for the current OS.
func libName() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return "libonnxruntime.so", nil
	case "darwin":
		return "libonnxruntime.dylib", nil
	case "windows":
		return "onnxruntime.dll", nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

// setLibraryPath attempts to locate the ONNX Runtime shared library.
func setLibraryPath() error {
	system := []string{
		"/usr/local/lib/libonnxruntime.so",
		"/usr/lib/libonnxruntime.so",
		"/opt/onnxruntime/cpu/lib/libonnxruntime.so",
	}
	for _, p := range system {
		if _, err := os.Stat(p); err == nil {
			onnxrt.SetSharedLibraryPath(p)
			return nil
		}
	}

	root, err := findProjectRoot()
	if err != nil {
		return err
	}
	name, err := libName()
	if err != nil {
		return err
	}
	p := filepath.Join(root, "onnxruntime", "lib", name)
	if _, err := os.Stat(p); err != nil {
		return fmt.Errorf("ONNX Runtime library not found at %s", p)
	}
	onnxrt.SetSharedLibraryPath(p)
	return nil
}
