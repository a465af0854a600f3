package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository/memory"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func TestAddWithinStock(t *testing.T) {
	s, _ := newTestCartStore(t, memory.New())
	ctx := context.Background()
	p := sneakers() // 3 in stock

	added, err := AddWithinStock(ctx, s, p, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = AddWithinStock(ctx, s, p, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 3, s.Quantity(p.ID))

	_, err = AddWithinStock(ctx, s, p, 1)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "OUT_OF_STOCK", appErr.Code)
}

func TestAddWithinStock_ConcurrentCallersShareStock(t *testing.T) {
	s, _ := newTestCartStore(t, memory.New())
	ctx := context.Background()
	p := sneakers()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, _ := AddWithinStock(ctx, s, p, 2)
			mu.Lock()
			added += n
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, p.Stock, added)
	assert.Equal(t, p.Stock, s.Quantity(p.ID))
}

func TestAddWithinStock_ZeroMeansOne(t *testing.T) {
	s, _ := newTestCartStore(t, memory.New())

	added, err := AddWithinStock(context.Background(), s, headphones(), 0)

	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestAddWithinStock_NotInStock(t *testing.T) {
	s, _ := newTestCartStore(t, memory.New())
	p := headphones()
	p.Stock, p.InStock = 0, false

	_, err := AddWithinStock(context.Background(), s, p, 1)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Zero(t, s.Count())
}

func TestClampToStock(t *testing.T) {
	p := domain.Product{Stock: 10}

	assert.Equal(t, 4, ClampToStock(p, 4))
	assert.Equal(t, 10, ClampToStock(p, 40))
	assert.Equal(t, 0, ClampToStock(p, 0))
	assert.Equal(t, 0, ClampToStock(p, -3))
}
