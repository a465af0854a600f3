package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/internal/repository/memory"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func newTestCartStore(t *testing.T, store repository.Store) (*CartStore, *recordingPublisher) {
	t.Helper()
	producer, pub := newTestProducer()
	return NewCartStore(context.Background(), store, producer, newTestLogger()), pub
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNewCartStore_Absent(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, repository.KeyCart).Return("", apperrors.NotFound("key", "cart"))

	s, _ := newTestCartStore(t, store)

	assert.Empty(t, s.Lines())
	assert.Zero(t, s.Total())
	assert.Zero(t, s.Count())
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewCartStore_Malformed(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":     "{{{",
		"wrong shape":  `{"id":1}`,
		"wrong fields": `[{"id":"one","quantity":"two"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			store := new(mockStore)
			store.On("Get", mock.Anything, repository.KeyCart).Return(raw, nil)

			s, _ := newTestCartStore(t, store)

			assert.Empty(t, s.Lines())
		})
	}
}

func TestNewCartStore_ReadFailure(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, repository.KeyCart).Return("", errors.New("connection refused"))

	s, _ := newTestCartStore(t, store)

	assert.Empty(t, s.Lines())
}

func TestNewCartStore_NormalizesLoadedLines(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, repository.KeyCart).Return(
		`[{"id":1,"name":"A","price":100,"quantity":2},
		  {"id":2,"name":"B","price":50,"quantity":0},
		  {"id":1,"name":"A again","price":100,"quantity":9},
		  {"id":3,"name":"C","price":10,"quantity":-1},
		  {"id":4,"name":"D","price":25,"quantity":1}]`, nil)

	s, _ := newTestCartStore(t, store)

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 4, lines[1].ID)
	assert.Equal(t, int64(225), s.Total())
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

func TestCartStore_AddSameProductIncrements(t *testing.T) {
	s, pub := newTestCartStore(t, memory.New())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		s.AddToCart(ctx, headphones())
	}

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, 4, s.Count())
	assert.Equal(t, int64(4*2999), s.Total())
	assert.True(t, s.IsInCart(1))
	assert.Equal(t, 4, s.Quantity(1))
	assert.Len(t, pub.published(), 4)
}

func TestCartStore_PersistsEveryMutation(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, repository.KeyCart).Return("", apperrors.NotFound("key", "cart"))
	store.On("Set", mock.Anything, repository.KeyCart, mock.Anything).Return(nil)

	s, _ := newTestCartStore(t, store)
	ctx := context.Background()

	s.AddToCart(ctx, headphones())
	s.UpdateQuantity(ctx, 1, 3)
	s.RemoveFromCart(ctx, 99)
	s.UpdateQuantity(ctx, 99, 2)
	s.Clear(ctx)

	store.AssertNumberOfCalls(t, "Set", 5)
	store.AssertCalled(t, "Set", mock.Anything, repository.KeyCart, "[]")
}

func TestCartStore_SerializedFormat(t *testing.T) {
	store := memory.New()
	s, _ := newTestCartStore(t, store)
	ctx := context.Background()

	s.AddToCart(ctx, sneakers())
	s.AddToCart(ctx, sneakers())

	raw, err := store.Get(ctx, repository.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": 5, "name": "Running Sneakers", "category": "footwear",
		"price": 1500, "original_price": 1500, "rating": 4.1, "reviews": 40,
		"image": "", "description": "", "features": null,
		"stock": 3, "in_stock": true, "quantity": 2
	}]`, raw)

	reloaded, _ := newTestCartStore(t, store)
	assert.Equal(t, s.Lines(), reloaded.Lines())
}

func TestCartStore_UpdateQuantity(t *testing.T) {
	s, _ := newTestCartStore(t, memory.New())
	ctx := context.Background()
	s.AddToCart(ctx, headphones())
	s.AddToCart(ctx, sneakers())

	s.UpdateQuantity(ctx, 5, 3)
	assert.Equal(t, 3, s.Quantity(5))
	assert.Equal(t, int64(2999+3*1500), s.Total())

	s.UpdateQuantity(ctx, 1, 0)
	assert.False(t, s.IsInCart(1))
	assert.Len(t, s.Lines(), 1)

	before := s.Lines()
	s.UpdateQuantity(ctx, 42, 7)
	assert.Equal(t, before, s.Lines())
}

func TestCartStore_RemoveFromCart(t *testing.T) {
	s, pub := newTestCartStore(t, memory.New())
	ctx := context.Background()
	s.AddToCart(ctx, headphones())
	s.AddToCart(ctx, sneakers())

	s.RemoveFromCart(ctx, 1)
	s.RemoveFromCart(ctx, 1)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].ID)
	assert.Equal(t, []string{
		event.TopicCartUpdated, event.TopicCartUpdated, event.TopicCartUpdated,
	}, pub.published(), "no-op removal publishes nothing")
}

func TestCartStore_Clear(t *testing.T) {
	s, pub := newTestCartStore(t, memory.New())
	ctx := context.Background()
	s.AddToCart(ctx, headphones())

	s.Clear(ctx)
	s.Clear(ctx)

	assert.Empty(t, s.Lines())
	assert.Zero(t, s.Total())
	assert.Equal(t, []string{event.TopicCartUpdated, event.TopicCartCleared}, pub.published())
}

func TestCartStore_SnapshotIsolation(t *testing.T) {
	s, _ := newTestCartStore(t, memory.New())
	ctx := context.Background()

	p := headphones()
	s.AddToCart(ctx, p)
	p.Price = 1
	p.Features[0] = "changed"

	lines := s.Lines()
	lines[0].Quantity = 100
	lines[0].Features[0] = "also changed"

	got := s.Lines()[0]
	assert.Equal(t, int64(2999), got.Price)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, []string{"Noise cancelling"}, got.Features)
}

func TestCartStore_WriteFailureIsAbsorbed(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, repository.KeyCart).Return("", apperrors.NotFound("key", "cart"))
	store.On("Set", mock.Anything, repository.KeyCart, mock.Anything).Return(errors.New("disk full"))

	s, _ := newTestCartStore(t, store)

	require.NotPanics(t, func() { s.AddToCart(context.Background(), headphones()) })
	assert.Equal(t, 1, s.Count())
}

func TestCartStore_ConcurrentAdds(t *testing.T) {
	s, _ := newTestCartStore(t, memory.New())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddToCart(ctx, headphones())
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Quantity(1))
	assert.Len(t, s.Lines(), 1)
}

func TestCartStore_AddUpTo(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, repository.KeyCart).Return("", apperrors.NotFound("key", "cart"))
	store.On("Set", mock.Anything, repository.KeyCart, mock.Anything).Return(nil)
	s, pub := newTestCartStore(t, store)
	ctx := context.Background()

	assert.Equal(t, 2, s.AddUpTo(ctx, sneakers(), 2, 3))
	assert.Equal(t, 1, s.AddUpTo(ctx, sneakers(), 5, 3))
	assert.Zero(t, s.AddUpTo(ctx, sneakers(), 1, 3))

	assert.Equal(t, 3, s.Quantity(5))
	assert.Equal(t, []string{event.TopicCartUpdated, event.TopicCartUpdated}, pub.published(),
		"one event per call that added units")
	store.AssertNumberOfCalls(t, "Set", 2)
}

func TestCartStore_ConcurrentAddUpToRespectsLimit(t *testing.T) {
	s, _ := newTestCartStore(t, memory.New())
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddUpTo(ctx, sneakers(), 2, 3)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, s.Quantity(5))
}

func TestCartStore_TotalMatchesLines(t *testing.T) {
	s, _ := newTestCartStore(t, memory.New())
	ctx := context.Background()
	assert.Zero(t, s.Total())

	s.AddToCart(ctx, headphones())
	s.AddToCart(ctx, sneakers())
	s.UpdateQuantity(ctx, 5, 2)

	var want int64
	for _, l := range s.Lines() {
		want += l.Price * int64(l.Quantity)
	}
	assert.Equal(t, want, s.Total())
	assert.Equal(t, domain.Summarize(s.Lines()).Subtotal.IntPart(), s.Total())
}
