package repository

import (
	"context"
)

// Keys under which the stores persist their collections.
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
)

// Store is the key/value Persistence Adapter shared by the cart and wishlist
// stores. Values are opaque strings; last write wins.
type Store interface {
	// Get returns the value stored under key, or an error wrapping
	// errors.ErrNotFound when nothing is stored.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Pinger is implemented by stores backed by a remote service or file.
type Pinger interface {
	Ping(ctx context.Context) error
}
