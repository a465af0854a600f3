package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/notify"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/validator"
)

// MsgOrderPlaced is the notice emitted after a successful checkout.
const MsgOrderPlaced = "Order placed successfully!"

// CheckoutService simulates order placement over the cart.
type CheckoutService struct {
	cart     *CartStore
	notifier notify.Notifier
	producer *event.Producer
	logger   *slog.Logger
	delay    time.Duration
	now      func() time.Time
}

// NewCheckoutService creates a checkout service. delay simulates payment
// processing latency; zero disables it.
func NewCheckoutService(cart *CartStore, notifier notify.Notifier, producer *event.Producer, logger *slog.Logger, delay time.Duration) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		notifier: notifier,
		producer: producer,
		logger:   logger,
		delay:    delay,
		now:      time.Now,
	}
}

// Summary prices the current cart.
func (s *CheckoutService) Summary() domain.OrderSummary {
	return domain.Summarize(s.cart.Lines())
}

// PlaceOrder validates details, waits out the simulated latency and turns the
// cart into an order. The cart is cleared on success.
func (s *CheckoutService) PlaceOrder(ctx context.Context, details domain.CheckoutDetails) (*domain.Order, error) {
	if err := validator.Validate(details); err != nil {
		return nil, err
	}

	if s.cart.Count() == 0 {
		return nil, apperrors.EmptyCart()
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("place order: %w", ctx.Err())
		case <-timer.C:
		}
	}

	// Lines added while waiting belong to this order; the cart may also have
	// been emptied meanwhile.
	lines := s.cart.takeAll(ctx, "order_placed")
	if len(lines) == 0 {
		return nil, apperrors.EmptyCart()
	}

	placedAt := s.now().UTC()
	order := &domain.Order{
		ID:       domain.OrderID(placedAt),
		Lines:    lines,
		Summary:  domain.Summarize(lines),
		Customer: details.Customer(),
		PlacedAt: placedAt,
	}

	ordersPlaced.Inc()
	s.notifier.Notify(ctx, domain.NoticeSuccess, MsgOrderPlaced)

	l := logger.WithContext(ctx, s.logger)
	if err := s.producer.PublishOrderPlaced(ctx, *order); err != nil {
		l.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	l.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Int("lines", len(order.Lines)),
		slog.String("total", order.Summary.Total.StringFixed(2)),
	)
	return order, nil
}
