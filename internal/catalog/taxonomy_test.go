package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_IDOrder(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 6)
	for i, c := range cats {
		assert.Equal(t, i+1, c.ID)
		assert.NotEmpty(t, c.Name)
	}
}

func TestByID(t *testing.T) {
	c, ok := ByID(CategoryFood)
	require.True(t, ok)
	assert.Equal(t, "food", c.Name)

	_, ok = ByID(42)
	assert.False(t, ok)
}

func TestResolveCategory_RankOrderWins(t *testing.T) {
	// First-ranked label matches clothing even though a later label
	// matches shoe.
	c := ResolveCategory([]string{"denim jacket", "running shoe"})
	assert.Equal(t, CategoryClothing, c.ID)
}

func TestResolveCategory_CaseInsensitive(t *testing.T) {
	c := ResolveCategory([]string{"Running Shoe"})
	assert.Equal(t, CategoryShoe, c.ID)
}

func TestResolveCategory_SkipsUnmatchedLabels(t *testing.T) {
	c := ResolveCategory([]string{"space shuttle", "wine bottle"})
	assert.Equal(t, CategoryBeverage, c.ID)
}

func TestResolveCategory_Fallback(t *testing.T) {
	c := ResolveCategory([]string{"space shuttle", "volcano"})
	assert.Equal(t, CategoryOther, c.ID)

	c = ResolveCategory(nil)
	assert.Equal(t, CategoryOther, c.ID)
}

func TestSuggestStockQuantity(t *testing.T) {
	food, _ := ByID(CategoryFood)
	shoe, _ := ByID(CategoryShoe)
	elec, _ := ByID(CategoryElectronics)

	assert.Equal(t, 20, SuggestStockQuantity(food))
	assert.Equal(t, 5, SuggestStockQuantity(shoe))
	assert.Equal(t, 10, SuggestStockQuantity(elec))
	assert.Equal(t, 10, SuggestStockQuantity(Other()))
}

func TestLowStockThreshold(t *testing.T) {
	bev, _ := ByID(CategoryBeverage)
	thr := LowStockThreshold(bev)
	require.NotNil(t, thr)
	assert.Equal(t, 20, *thr)

	elec, _ := ByID(CategoryElectronics)
	assert.Nil(t, LowStockThreshold(elec))
	assert.Nil(t, LowStockThreshold(Other()))
}
