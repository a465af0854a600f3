package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

type published struct {
	topic string
	event *pkgkafka.Event
}

type recordingPublisher struct {
	events []published
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, topic string, e *pkgkafka.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, published{topic: topic, event: e})
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sampleLines() []domain.CartLine {
	return []domain.CartLine{
		{Product: domain.Product{ID: 1, Name: "Headphones", Price: 2999}, Quantity: 2},
		{Product: domain.Product{ID: 5, Name: "Sneakers", Price: 1500}, Quantity: 1},
	}
}

func TestProducer_PublishCartUpdated(t *testing.T) {
	rec := &recordingPublisher{}
	p := NewProducer(rec, newTestLogger())
	ctx := logger.WithCorrelationID(context.Background(), "corr-1")

	require.NoError(t, p.PublishCartUpdated(ctx, sampleLines()))

	require.Len(t, rec.events, 1)
	got := rec.events[0]
	assert.Equal(t, TopicCartUpdated, got.topic)
	assert.Equal(t, TopicCartUpdated, got.event.EventType)
	assert.Equal(t, AggregateTypeCart, got.event.AggregateType)
	assert.Equal(t, SourceStorefront, got.event.Source)
	assert.Equal(t, "corr-1", got.event.CorrelationID)

	var data CartUpdatedData
	require.NoError(t, got.event.UnmarshalData(&data))
	assert.Equal(t, 3, data.ItemCount)
	assert.Equal(t, int64(7498), data.TotalAmount)
	assert.Equal(t, LineData{ProductID: 1, Name: "Headphones", Price: 2999, Quantity: 2}, data.Lines[0])
}

func TestProducer_PublishCartCleared(t *testing.T) {
	rec := &recordingPublisher{}
	p := NewProducer(rec, newTestLogger())

	require.NoError(t, p.PublishCartCleared(context.Background(), "order_placed"))

	require.Len(t, rec.events, 1)
	assert.Equal(t, TopicCartCleared, rec.events[0].topic)
	assert.Empty(t, rec.events[0].event.CorrelationID)

	var data CartClearedData
	require.NoError(t, rec.events[0].event.UnmarshalData(&data))
	assert.Equal(t, "order_placed", data.Reason)
}

func TestProducer_PublishWishlistUpdated(t *testing.T) {
	rec := &recordingPublisher{}
	p := NewProducer(rec, newTestLogger())

	items := []domain.Product{{ID: 4}, {ID: 9}}
	require.NoError(t, p.PublishWishlistUpdated(context.Background(), items))

	var data WishlistUpdatedData
	require.NoError(t, rec.events[0].event.UnmarshalData(&data))
	assert.Equal(t, []int{4, 9}, data.ProductIDs)
}

func TestProducer_PublishOrderPlaced(t *testing.T) {
	rec := &recordingPublisher{}
	p := NewProducer(rec, newTestLogger())

	lines := sampleLines()
	placed := time.UnixMilli(1700000000000)
	order := domain.Order{
		ID:       domain.OrderID(placed),
		Lines:    lines,
		Summary:  domain.Summarize(lines),
		Customer: domain.Customer{FirstName: "Ada", Email: "ada@example.com"},
		PlacedAt: placed,
	}

	require.NoError(t, p.PublishOrderPlaced(context.Background(), order))

	got := rec.events[0]
	assert.Equal(t, TopicOrderPlaced, got.topic)
	assert.Equal(t, "ORD-1700000000000", got.event.AggregateID)

	var data OrderPlacedData
	require.NoError(t, got.event.UnmarshalData(&data))
	assert.Equal(t, "7498.00", data.Subtotal)
	assert.Equal(t, "0.00", data.Shipping)
	assert.Equal(t, "1349.64", data.Tax)
	assert.Equal(t, "8847.64", data.Total)
	assert.Equal(t, "Ada", data.Customer.FirstName)
	assert.NotContains(t, string(got.event.Data), "card")
}

func TestProducer_PublishError(t *testing.T) {
	rec := &recordingPublisher{err: errors.New("broker down")}
	p := NewProducer(rec, newTestLogger())

	err := p.PublishCartCleared(context.Background(), "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish storefront.cart.cleared event")
	assert.Contains(t, err.Error(), "broker down")
}

func TestProducer_NilPublisherDiscards(t *testing.T) {
	p := NewProducer(nil, newTestLogger())

	assert.NoError(t, p.PublishCartUpdated(context.Background(), sampleLines()))
	assert.NoError(t, p.PublishWishlistUpdated(context.Background(), nil))
}
