package classify

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadLabels reads one label per line, skipping blank lines. Order
// defines the class index.
func LoadLabels(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // G304: label file path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer func() { _ = f.Close() }()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		labels = append(labels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels file %s is empty", path)
	}
	return labels, nil
}
