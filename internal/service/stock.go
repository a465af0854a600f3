package service

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// AddWithinStock adds up to quantity units of p to cart, never holding more
// than p.Stock in total. Quantities below 1 add one unit. It returns the
// number of units added, or an OUT_OF_STOCK error when none can be.
//
// The cart store accepts any quantity; this is the guard its callers apply.
func AddWithinStock(ctx context.Context, cart *CartStore, p domain.Product, quantity int) (int, error) {
	if !p.InStock {
		return 0, apperrors.OutOfStock(p.Name)
	}
	added := cart.AddUpTo(ctx, p, max(quantity, 1), p.Stock)
	if added == 0 {
		return 0, apperrors.OutOfStock(p.Name)
	}
	return added, nil
}

// ClampToStock limits a requested line quantity to what p has in stock.
// Negative requests become zero.
func ClampToStock(p domain.Product, quantity int) int {
	return max(0, min(quantity, p.Stock))
}
