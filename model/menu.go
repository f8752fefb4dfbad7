package model

import "sort"

type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category"`
}

// CatalogSection groups the menu by category for the order screen.
type CatalogSection struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

// Catalog groups items by category, keeping the menu order within a
// category. Items without a category are left out.
func Catalog(items []MenuItem) []CatalogSection {
	index := map[string]int{}
	var sections []CatalogSection
	for _, it := range items {
		if it.Category == "" {
			continue
		}
		i, ok := index[it.Category]
		if !ok {
			i = len(sections)
			index[it.Category] = i
			sections = append(sections, CatalogSection{Category: it.Category})
		}
		sections[i].Items = append(sections[i].Items, it)
	}
	sort.SliceStable(sections, func(a, b int) bool { return sections[a].Category < sections[b].Category })
	return sections
}
