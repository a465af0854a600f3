package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/pkg/logger"
)

// CartStore owns the cart lines and writes the whole cart through to the
// Persistence Adapter after every mutating call. Its operations never fail:
// storage problems are logged and the in-memory state stays authoritative.
type CartStore struct {
	mu       sync.Mutex
	cart     domain.Cart
	store    repository.Store
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartStore creates a cart store, reading any persisted cart from store.
func NewCartStore(ctx context.Context, store repository.Store, producer *event.Producer, logger *slog.Logger) *CartStore {
	lines, _ := loadJSON[[]domain.CartLine](ctx, store, repository.KeyCart, logger)
	s := &CartStore{
		cart:     domain.NewCart(lines),
		store:    store,
		producer: producer,
		logger:   logger,
	}
	logger.DebugContext(ctx, "cart loaded", slog.Int("lines", len(s.cart.Lines)))
	return s
}

// AddToCart increments the line for p, or appends a snapshot of p with
// quantity 1.
func (s *CartStore) AddToCart(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Add(p)
	cartOperations.WithLabelValues("add").Inc()
	s.commit(ctx, true)
}

// RemoveFromCart deletes the line for productID. Absent ids are a no-op.
func (s *CartStore) RemoveFromCart(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.cart.Remove(productID)
	cartOperations.WithLabelValues("remove").Inc()
	s.commit(ctx, changed)
}

// UpdateQuantity sets the line's quantity; zero removes the line. The caller
// is responsible for clamping quantity to stock.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.cart.SetQuantity(productID, quantity)
	cartOperations.WithLabelValues("update").Inc()
	s.commit(ctx, changed)
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) {
	s.takeAll(ctx, "user")
}

// AddUpTo adds up to quantity units of p while keeping the line at or below
// limit units. The check and the additions happen under one lock and produce
// a single write and event. It returns the number of units added.
func (s *CartStore) AddUpTo(ctx context.Context, p domain.Product, quantity, limit int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	held := 0
	if i := s.cart.FindIndex(p.ID); i >= 0 {
		held = s.cart.Lines[i].Quantity
	}
	n := min(quantity, limit-held)
	if n <= 0 {
		return 0
	}
	for range n {
		s.cart.Add(p)
	}
	cartOperations.WithLabelValues("add").Inc()
	s.commit(ctx, true)
	return n
}

// takeAll empties the cart and returns the lines it held, as one step.
func (s *CartStore) takeAll(ctx context.Context, reason string) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cart.Snapshot()
	s.cart.Clear()
	cartOperations.WithLabelValues("clear").Inc()
	s.persist(ctx)

	if len(lines) == 0 {
		return lines
	}
	if err := s.producer.PublishCartCleared(ctx, reason); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("error", err.Error()),
		)
	}
	return lines
}

// Total is Σ price × quantity over all lines.
func (s *CartStore) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// Count is Σ quantity over all lines.
func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

// IsInCart reports whether a line exists for productID.
func (s *CartStore) IsInCart(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Contains(productID)
}

// Quantity returns the quantity held for productID, 0 when absent.
func (s *CartStore) Quantity(productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.cart.FindIndex(productID); i >= 0 {
		return s.cart.Lines[i].Quantity
	}
	return 0
}

// Lines returns a copy of the cart lines in insertion order.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

// commit persists the cart and, when it changed, publishes cart.updated.
// Callers hold s.mu.
func (s *CartStore) commit(ctx context.Context, changed bool) {
	s.persist(ctx)
	if !changed {
		return
	}
	if err := s.producer.PublishCartUpdated(ctx, s.cart.Lines); err != nil {
		logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("error", err.Error()),
		)
	}
}

func (s *CartStore) persist(ctx context.Context) {
	saveJSON(ctx, s.store, repository.KeyCart, s.cart.Lines, s.logger)
}
