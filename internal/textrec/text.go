package textrec

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanFragment normalizes recognized text: Unicode NFC, whitespace
// runs collapsed to single spaces, surrounding whitespace trimmed.
func CleanFragment(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}
