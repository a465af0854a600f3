package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated     = "storefront.cart.updated"
	TopicCartCleared     = "storefront.cart.cleared"
	TopicWishlistUpdated = "storefront.wishlist.updated"
	TopicOrderPlaced     = "storefront.order.placed"
)

// Aggregate types.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
	AggregateTypeOrder    = "order"
)

// SourceStorefront identifies events originating from this process.
const SourceStorefront = "storefront"

// LineData is a cart or order line within event payloads.
type LineData struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	Lines       []LineData `json:"lines"`
	ItemCount   int        `json:"item_count"`
	TotalAmount int64      `json:"total_amount"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	Reason string `json:"reason"`
}

// WishlistUpdatedData is the payload for a wishlist.updated event.
type WishlistUpdatedData struct {
	ProductIDs []int `json:"product_ids"`
}

// OrderPlacedData is the payload for an order.placed event. Card data is
// never part of it.
type OrderPlacedData struct {
	OrderID  string          `json:"order_id"`
	Lines    []LineData      `json:"lines"`
	Subtotal string          `json:"subtotal"`
	Shipping string          `json:"shipping"`
	Tax      string          `json:"tax"`
	Total    string          `json:"total"`
	Customer domain.Customer `json:"customer"`
}

// Publisher sends an envelope to a topic. *pkgkafka.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Discard drops every event. It is used when events are disabled.
type Discard struct{}

// Publish implements Publisher.
func (Discard) Publish(context.Context, string, *pkgkafka.Event) error { return nil }

// Producer publishes storefront domain events.
type Producer struct {
	pub    Publisher
	logger *slog.Logger
}

// NewProducer creates an event producer. A nil publisher discards events.
func NewProducer(pub Publisher, logger *slog.Logger) *Producer {
	if pub == nil {
		pub = Discard{}
	}
	return &Producer{pub: pub, logger: logger}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, lines []domain.CartLine) error {
	cart := domain.NewCart(lines)
	data := CartUpdatedData{
		Lines:       toLineData(lines),
		ItemCount:   cart.Count(),
		TotalAmount: cart.Total(),
	}
	if err := p.publish(ctx, TopicCartUpdated, AggregateTypeCart, AggregateTypeCart, data); err != nil {
		return err
	}
	p.logger.DebugContext(ctx, "published cart.updated event", slog.Int("item_count", data.ItemCount))
	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, reason string) error {
	if err := p.publish(ctx, TopicCartCleared, AggregateTypeCart, AggregateTypeCart, CartClearedData{Reason: reason}); err != nil {
		return err
	}
	p.logger.DebugContext(ctx, "published cart.cleared event", slog.String("reason", reason))
	return nil
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, items []domain.Product) error {
	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	data := WishlistUpdatedData{ProductIDs: ids}
	if err := p.publish(ctx, TopicWishlistUpdated, AggregateTypeWishlist, AggregateTypeWishlist, data); err != nil {
		return err
	}
	p.logger.DebugContext(ctx, "published wishlist.updated event", slog.Int("item_count", len(ids)))
	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	data := OrderPlacedData{
		OrderID:  order.ID,
		Lines:    toLineData(order.Lines),
		Subtotal: order.Summary.Subtotal.StringFixed(2),
		Shipping: order.Summary.Shipping.StringFixed(2),
		Tax:      order.Summary.Tax.StringFixed(2),
		Total:    order.Summary.Total.StringFixed(2),
		Customer: order.Customer,
	}
	if err := p.publish(ctx, TopicOrderPlaced, order.ID, AggregateTypeOrder, data); err != nil {
		return err
	}
	p.logger.DebugContext(ctx, "published order.placed event", slog.String("order_id", order.ID))
	return nil
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}
	if err := p.pub.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}

func toLineData(lines []domain.CartLine) []LineData {
	out := make([]LineData, len(lines))
	for i, l := range lines {
		out[i] = LineData{ProductID: l.ID, Name: l.Name, Price: l.Price, Quantity: l.Quantity}
	}
	return out
}
