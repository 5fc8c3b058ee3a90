// Package extract derives catalog fields from recognized text fragments.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// pricePattern matches a price token: a currency marker followed by
// digits. Cents are required to be exactly two digits when present. The
// marker is mandatory so bare numbers (quantities, weights, barcode
// payloads) never parse as prices.
var pricePattern = regexp.MustCompile(`\$\d+(?:\.\d{2})?`)

// prefixPricePattern matches a fragment that begins with a price token.
var prefixPricePattern = regexp.MustCompile(`^\$\d+(?:\.\d{2})?`)

// ExtractPrices scans fragments in order and returns every price value
// found, preserving encounter order. Duplicate values are kept.
func ExtractPrices(fragments []string) []float64 {
	var prices []float64
	for _, frag := range fragments {
		for _, m := range pricePattern.FindAllString(frag, -1) {
			v, err := strconv.ParseFloat(strings.TrimPrefix(m, "$"), 64)
			if err != nil {
				continue
			}
			prices = append(prices, v)
		}
	}
	return prices
}

// SelectPrices applies the two-slot pricing rule to an ordered price list.
// With two or more prices the first is the suggested retail price and the
// last is the actual shelf price. A single price is treated as the actual
// price only. No prices yields zero for both.
func SelectPrices(prices []float64) (suggested, actual float64) {
	switch {
	case len(prices) > 1:
		return prices[0], prices[len(prices)-1]
	case len(prices) == 1:
		return 0, prices[0]
	default:
		return 0, 0
	}
}

// IsPriceFragment reports whether a fragment starts with a price token
// after trimming surrounding whitespace. Such fragments are excluded
// from name selection.
func IsPriceFragment(fragment string) bool {
	return prefixPricePattern.MatchString(strings.TrimSpace(fragment))
}
