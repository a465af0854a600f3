package domain

import (
	"fmt"
	"math"
)

// Category identifies a catalog section.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFootwear    Category = "footwear"
	CategoryAccessories Category = "accessories"
	CategorySports      Category = "sports"
	CategoryHome        Category = "home"
)

var categoryNames = map[Category]string{
	CategoryAll:         "All",
	CategoryElectronics: "Electronics",
	CategoryClothing:    "Clothing",
	CategoryFootwear:    "Footwear",
	CategoryAccessories: "Accessories",
	CategorySports:      "Sports",
	CategoryHome:        "Home",
}

// CategoryInfo pairs a category with its display name.
type CategoryInfo struct {
	ID   Category `json:"id"`
	Name string   `json:"name"`
}

// Categories returns the filterable categories in display order, "all" first.
func Categories() []CategoryInfo {
	order := []Category{
		CategoryAll, CategoryElectronics, CategoryClothing, CategoryFootwear,
		CategoryAccessories, CategorySports, CategoryHome,
	}
	out := make([]CategoryInfo, len(order))
	for i, c := range order {
		out[i] = CategoryInfo{ID: c, Name: categoryNames[c]}
	}
	return out
}

// Name returns the display name, or the raw id for unknown categories.
func (c Category) Name() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return string(c)
}

// IsProductCategory reports whether a product may belong to c. "all" is a
// filter value only.
func (c Category) IsProductCategory() bool {
	_, ok := categoryNames[c]
	return ok && c != CategoryAll
}

// IsFilterCategory reports whether c is accepted by the catalog filter.
func (c Category) IsFilterCategory() bool {
	_, ok := categoryNames[c]
	return ok
}

// Product is an immutable catalog record. Prices are whole currency units.
type Product struct {
	ID            int      `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Category      Category `json:"category" yaml:"category"`
	Price         int64    `json:"price" yaml:"price"`
	OriginalPrice int64    `json:"original_price" yaml:"original_price"`
	Rating        float64  `json:"rating" yaml:"rating"`
	Reviews       int      `json:"reviews" yaml:"reviews"`
	Image         string   `json:"image" yaml:"image"`
	Description   string   `json:"description" yaml:"description"`
	Features      []string `json:"features" yaml:"features"`
	Stock         int      `json:"stock" yaml:"stock"`
	InStock       bool     `json:"in_stock" yaml:"in_stock"`
}

// HasDiscount reports whether the product sells below its original price.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice > p.Price
}

// DiscountPercent returns the rounded markdown percentage, 0 without a discount.
func (p Product) DiscountPercent() int {
	if !p.HasDiscount() || p.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round(float64(p.OriginalPrice-p.Price) / float64(p.OriginalPrice) * 100))
}

// Clone returns a deep copy so snapshots never share the features slice.
func (p Product) Clone() Product {
	if p.Features != nil {
		p.Features = append([]string(nil), p.Features...)
	}
	return p
}

// Validate checks the catalog invariants of a single product.
func (p Product) Validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("product %q: id must be positive", p.Name)
	case p.Name == "":
		return fmt.Errorf("product %d: name is required", p.ID)
	case !p.Category.IsProductCategory():
		return fmt.Errorf("product %d: unknown category %q", p.ID, p.Category)
	case p.Price < 0:
		return fmt.Errorf("product %d: price must not be negative", p.ID)
	case p.OriginalPrice < p.Price:
		return fmt.Errorf("product %d: original price %d below price %d", p.ID, p.OriginalPrice, p.Price)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("product %d: rating %.1f outside 0-5", p.ID, p.Rating)
	case p.Reviews < 0:
		return fmt.Errorf("product %d: reviews must not be negative", p.ID)
	case p.Stock < 0:
		return fmt.Errorf("product %d: stock must not be negative", p.ID)
	}
	return nil
}
