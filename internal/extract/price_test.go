package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrices_Order(t *testing.T) {
	prices := ExtractPrices([]string{"MSRP $29.99", "Sale $19.99"})
	assert.Equal(t, []float64{29.99, 19.99}, prices)
}

func TestExtractPrices_RequiresMarker(t *testing.T) {
	// Bare numbers are quantities, weights or barcode payloads, never
	// prices.
	assert.Empty(t, ExtractPrices([]string{"5901234123457", "Sale 19.99", "500g", "12 pack"}))
}

func TestExtractPrices_MultiplePerFragment(t *testing.T) {
	prices := ExtractPrices([]string{"was $10.00 now $7.50"})
	assert.Equal(t, []float64{10.00, 7.50}, prices)
}

func TestExtractPrices_WholeDollar(t *testing.T) {
	prices := ExtractPrices([]string{"$15"})
	assert.Equal(t, []float64{15}, prices)
}

func TestExtractPrices_DuplicatesKept(t *testing.T) {
	prices := ExtractPrices([]string{"$5.00", "$5.00"})
	assert.Equal(t, []float64{5, 5}, prices)
}

func TestExtractPrices_None(t *testing.T) {
	assert.Empty(t, ExtractPrices([]string{"organic oats", ""}))
	assert.Empty(t, ExtractPrices(nil))
}

func TestSelectPrices_TwoOrMore(t *testing.T) {
	suggested, actual := SelectPrices([]float64{29.99, 24.99, 19.99})
	assert.InDelta(t, 29.99, suggested, 1e-9)
	assert.InDelta(t, 19.99, actual, 1e-9)
}

func TestSelectPrices_Single(t *testing.T) {
	suggested, actual := SelectPrices([]float64{9.99})
	assert.Zero(t, suggested)
	assert.InDelta(t, 9.99, actual, 1e-9)
}

func TestSelectPrices_Empty(t *testing.T) {
	suggested, actual := SelectPrices(nil)
	assert.Zero(t, suggested)
	assert.Zero(t, actual)
}

func TestIsPriceFragment(t *testing.T) {
	assert.True(t, IsPriceFragment("$19.99"))
	assert.True(t, IsPriceFragment(" $15 "))
	assert.True(t, IsPriceFragment("$19.99 only"))
	assert.False(t, IsPriceFragment("19.99"))
	assert.False(t, IsPriceFragment("15"))
	assert.False(t, IsPriceFragment("5901234123457"))
	assert.False(t, IsPriceFragment("oats"))
	assert.False(t, IsPriceFragment("sale $5.00"))
	assert.False(t, IsPriceFragment(""))
}
