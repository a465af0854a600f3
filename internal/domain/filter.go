package domain

import (
	"fmt"
	"strings"
)

// DefaultMaxPrice is the initial upper bound of the price filter.
const DefaultMaxPrice int64 = 20000

// FilterCriteria narrows the catalog view. It is transient and never persisted.
type FilterCriteria struct {
	SearchTerm string   `json:"search_term"`
	Category   Category `json:"category"`
	MaxPrice   int64    `json:"max_price"`
}

// DefaultCriteria returns {"", "all", 20000}.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Category: CategoryAll, MaxPrice: DefaultMaxPrice}
}

// Validate checks the category and price bound.
func (c FilterCriteria) Validate() error {
	if !c.Category.IsFilterCategory() {
		return fmt.Errorf("unknown category %q", c.Category)
	}
	if c.MaxPrice < 0 {
		return fmt.Errorf("max price must not be negative")
	}
	return nil
}

// Matches applies the search, category and price predicates to p.
func (c FilterCriteria) Matches(p Product) bool {
	if c.Category != CategoryAll && p.Category != c.Category {
		return false
	}
	if p.Price > c.MaxPrice {
		return false
	}
	if c.SearchTerm == "" {
		return true
	}
	term := strings.ToLower(c.SearchTerm)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}
