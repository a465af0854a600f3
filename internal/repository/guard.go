package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/utafrali/storefront/pkg/breaker"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Guarded wraps a Store in a circuit breaker. Missing keys are not failures.
type Guarded struct {
	next Store
	cb   *breaker.Breaker[string]
}

// NewGuarded guards next with a breaker built from cfg.
func NewGuarded(next Store, cfg breaker.Config, logger *slog.Logger) *Guarded {
	cfg.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, apperrors.ErrNotFound)
	}
	return &Guarded{next: next, cb: breaker.New[string](cfg, logger)}
}

// Get implements Store.
func (g *Guarded) Get(ctx context.Context, key string) (string, error) {
	v, err := g.cb.Execute(func() (string, error) {
		return g.next.Get(ctx, key)
	})
	return v, g.translate(err)
}

// Set implements Store.
func (g *Guarded) Set(ctx context.Context, key, value string) error {
	_, err := g.cb.Execute(func() (string, error) {
		return "", g.next.Set(ctx, key, value)
	})
	return g.translate(err)
}

// Ping checks the wrapped store directly, bypassing the breaker so readiness
// reflects the backend rather than the breaker state.
func (g *Guarded) Ping(ctx context.Context) error {
	if p, ok := g.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close closes the wrapped store when it holds resources.
func (g *Guarded) Close() error {
	if c, ok := g.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (g *Guarded) translate(err error) error {
	if breaker.Rejected(err) {
		return apperrors.Unavailable("storage temporarily unavailable", err)
	}
	return err
}
