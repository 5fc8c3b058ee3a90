package extract

import "strings"

// ProductName selects a product name from recognized fragments: the
// longest fragment that is not itself a price token. Earlier fragments
// win ties. Returns "" when no eligible fragment exists.
func ProductName(fragments []string) string {
	name := ""
	for _, frag := range fragments {
		trimmed := strings.TrimSpace(frag)
		if trimmed == "" || IsPriceFragment(trimmed) {
			continue
		}
		if len(trimmed) > len(name) {
			name = trimmed
		}
	}
	return name
}
