// Package catalog holds the product taxonomy and the stock heuristics
// applied to recognized products.
package catalog

import "strings"

// Category identifiers. These are stable and referenced by downstream
// inventory systems, so they must not be renumbered.
const (
	CategoryShoe        = 1
	CategoryClothing    = 2
	CategoryElectronics = 3
	CategoryFood        = 4
	CategoryBeverage    = 5
	CategoryOther       = 6
)

// Category describes one entry of the product taxonomy.
type Category struct {
	ID   int
	Name string

	// keywords are matched as substrings against lowercased classifier
	// labels when resolving a category from predictions.
	keywords []string
}

// categories is the full taxonomy in ID order.
var categories = []Category{
	{
		ID:   CategoryShoe,
		Name: "shoe",
		keywords: []string{
			"shoe", "sneaker", "boot", "sandal", "loafer", "clog", "moccasin",
		},
	},
	{
		ID:   CategoryClothing,
		Name: "clothing",
		keywords: []string{
			"shirt", "jersey", "sweatshirt", "jacket", "coat", "jean", "trouser",
			"dress", "suit", "sock", "sweater", "cardigan", "kimono", "pajama",
			"vest", "gown", "poncho", "apparel",
		},
	},
	{
		ID:   CategoryElectronics,
		Name: "electronics",
		keywords: []string{
			"laptop", "computer", "phone", "monitor", "keyboard", "mouse",
			"camera", "television", "speaker", "headphone", "remote control",
			"printer", "modem", "ipod", "radio", "projector",
		},
	},
	{
		ID:   CategoryFood,
		Name: "food",
		keywords: []string{
			"food", "banana", "apple", "orange", "pizza", "burger", "sandwich",
			"pretzel", "bagel", "broccoli", "mushroom", "corn", "cucumber",
			"lemon", "strawberry", "pineapple", "chocolate", "candy", "bread",
			"cheese", "loaf", "hotdog", "burrito", "ice cream", "guacamole",
		},
	},
	{
		ID:   CategoryBeverage,
		Name: "beverage",
		keywords: []string{
			"bottle", "soda", "beer", "wine", "juice", "milk", "coffee", "tea",
			"espresso", "eggnog", "beverage", "drink",
		},
	},
	{
		ID:   CategoryOther,
		Name: "other",
	},
}

// Categories returns a copy of the taxonomy in ID order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ByID looks up a category by its identifier.
func ByID(id int) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Other returns the fallback category for unrecognized products.
func Other() Category {
	c, _ := ByID(CategoryOther)
	return c
}

// ResolveCategory maps ranked classifier labels to a taxonomy category.
// Labels are considered in rank order; the first label containing a
// category keyword wins, with categories checked in ID order. When no
// label matches, the fallback category is returned.
func ResolveCategory(labels []string) Category {
	for _, label := range labels {
		l := strings.ToLower(label)
		for _, c := range categories {
			for _, kw := range c.keywords {
				if strings.Contains(l, kw) {
					return c
				}
			}
		}
	}
	return Other()
}
