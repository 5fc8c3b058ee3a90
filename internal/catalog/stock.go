package catalog

// baseQuantities holds the initial stock suggestion per category.
// Perishables start higher to cover faster turnover.
var baseQuantities = map[int]int{
	CategoryShoe:     5,
	CategoryClothing: 5,
	CategoryFood:     20,
	CategoryBeverage: 20,
}

// defaultBaseQuantity applies when a category has no specific policy.
const defaultBaseQuantity = 10

// lowStockThresholds holds reorder thresholds for categories that have one.
var lowStockThresholds = map[int]int{
	CategoryShoe:     5,
	CategoryClothing: 5,
	CategoryFood:     20,
	CategoryBeverage: 20,
}

// SuggestStockQuantity returns the initial stock quantity for a category.
func SuggestStockQuantity(c Category) int {
	if q, ok := baseQuantities[c.ID]; ok {
		return q
	}
	return defaultBaseQuantity
}

// LowStockThreshold returns the reorder threshold for a category, or nil
// when the category carries no threshold policy.
func LowStockThreshold(c Category) *int {
	if t, ok := lowStockThresholds[c.ID]; ok {
		v := t
		return &v
	}
	return nil
}
