package textrec

import (
	"bufio"
	"fmt"
	"os"
)

// LoadDictionary reads the recognition character set, one character per
// line. Index 0 in the model output is the CTC blank, so the decoded
// class i maps to dictionary entry i-1.
func LoadDictionary(path string) ([]rune, error) {
	f, err := os.Open(path) //nolint:gosec // G304: dictionary path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer func() { _ = f.Close() }()

	var charset []rune
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			// A bare newline encodes the space character.
			charset = append(charset, ' ')
			continue
		}
		runes := []rune(line)
		if len(runes) != 1 {
			return nil, fmt.Errorf("dictionary line %q is not a single character", line)
		}
		charset = append(charset, runes[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	if len(charset) == 0 {
		return nil, fmt.Errorf("dictionary %s is empty", path)
	}
	return charset, nil
}
