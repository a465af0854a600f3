package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/notify"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/pkg/logger"
)

// WishlistStore dispatches wishlist actions through domain.ReduceWishlist and
// carries out the effects each transition asks for.
type WishlistStore struct {
	mu       sync.Mutex
	items    []domain.Product
	store    repository.Store
	notifier notify.Notifier
	producer *event.Producer
	logger   *slog.Logger
}

// NewWishlistStore creates a wishlist store and loads the persisted
// wishlist. Loading never writes back.
func NewWishlistStore(ctx context.Context, store repository.Store, notifier notify.Notifier, producer *event.Producer, logger *slog.Logger) *WishlistStore {
	s := &WishlistStore{
		items:    []domain.Product{},
		store:    store,
		notifier: notifier,
		producer: producer,
		logger:   logger,
	}
	items, _ := loadJSON[[]domain.Product](ctx, store, repository.KeyWishlist, logger)
	s.dispatch(ctx, domain.LoadWishlist{Items: items})
	logger.DebugContext(ctx, "wishlist loaded", slog.Int("items", len(s.items)))
	return s
}

// Add saves a snapshot of p unless it is already present.
func (s *WishlistStore) Add(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch(ctx, domain.AddToWishlist{Product: p})
}

// Remove drops productID from the wishlist.
func (s *WishlistStore) Remove(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch(ctx, domain.RemoveFromWishlist{ProductID: productID})
}

// Clear empties the wishlist.
func (s *WishlistStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch(ctx, domain.ClearWishlist{})
}

// Toggle removes p when it is saved and adds it otherwise. It reports whether
// p is saved afterwards.
func (s *WishlistStore) Toggle(ctx context.Context, p domain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.WishlistContains(s.items, p.ID) {
		s.dispatch(ctx, domain.RemoveFromWishlist{ProductID: p.ID})
		return false
	}
	s.dispatch(ctx, domain.AddToWishlist{Product: p})
	return true
}

// IsInWishlist reports whether productID is saved.
func (s *WishlistStore) IsInWishlist(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.WishlistContains(s.items, productID)
}

// Items returns a copy of the saved products in insertion order.
func (s *WishlistStore) Items() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.items))
	for i, p := range s.items {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of saved products.
func (s *WishlistStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// dispatch applies action and its effects. Callers hold s.mu, except during
// construction.
func (s *WishlistStore) dispatch(ctx context.Context, action domain.WishlistAction) {
	next, effects := domain.ReduceWishlist(s.items, action)
	s.items = next
	wishlistOperations.WithLabelValues(actionName(action)).Inc()

	if effects.Notice != nil {
		s.notifier.Notify(ctx, effects.Notice.Kind, effects.Notice.Message)
	}
	if !effects.Persist {
		return
	}

	saveJSON(ctx, s.store, repository.KeyWishlist, s.items, s.logger)
	if err := s.producer.PublishWishlistUpdated(ctx, s.items); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("error", err.Error()),
		)
	}
}

func actionName(action domain.WishlistAction) string {
	switch action.(type) {
	case domain.AddToWishlist:
		return "add"
	case domain.RemoveFromWishlist:
		return "remove"
	case domain.ClearWishlist:
		return "clear"
	case domain.LoadWishlist:
		return "load"
	default:
		return "unknown"
	}
}
