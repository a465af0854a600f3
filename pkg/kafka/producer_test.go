package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func headerMap(msg kafka.Message) map[string]string {
	out := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		out[h.Key] = string(h.Value)
	}
	return out
}

// --- Event ---

func TestNewEvent_Fields(t *testing.T) {
	type cartData struct {
		ItemCount int   `json:"item_count"`
		Total     int64 `json:"total"`
	}

	data := cartData{ItemCount: 3, Total: 2497}
	event, err := NewEvent("cart.updated", "cart", "cart", "storefront", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "cart.updated", event.EventType)
	assert.Equal(t, "cart", event.AggregateID)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)

	var got cartData
	require.NoError(t, event.UnmarshalData(&got))
	assert.Equal(t, data, got)
}

func TestNewEvent_UnserializableData(t *testing.T) {
	_, err := NewEvent("cart.updated", "cart", "cart", "storefront", make(chan int))
	assert.Error(t, err)
}

func TestNewEvent_UniqueIDs(t *testing.T) {
	a, err := NewEvent("order.placed", "ORD-1", "order", "storefront", nil)
	require.NoError(t, err)
	b, err := NewEvent("order.placed", "ORD-1", "order", "storefront", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.EventID, b.EventID)
}

// --- Producer ---

func TestProducer_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := NewProducerWithWriter(w, []string{"localhost:9092"}, newTestLogger())

	event, err := NewEvent("order.placed", "ORD-1700000000000", "order", "storefront", map[string]int{"lines": 2})
	require.NoError(t, err)
	event.WithCorrelationID("corr-1")

	before := testutil.ToFloat64(producerMessagesPublished.WithLabelValues("storefront.orders"))
	require.NoError(t, p.Publish(context.Background(), "storefront.orders", event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "storefront.orders", msg.Topic)
	assert.Equal(t, "ORD-1700000000000", string(msg.Key))
	assert.Equal(t, map[string]string{
		"event_type":     "order.placed",
		"source":         "storefront",
		"correlation_id": "corr-1",
	}, headerMap(msg))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)

	assert.Equal(t, before+1, testutil.ToFloat64(producerMessagesPublished.WithLabelValues("storefront.orders")))
}

func TestProducer_PublishError(t *testing.T) {
	w := &recordingWriter{err: errors.New("leader not available")}
	p := NewProducerWithWriter(w, nil, newTestLogger())

	event, err := NewEvent("cart.cleared", "cart", "cart", "storefront", nil)
	require.NoError(t, err)

	before := testutil.ToFloat64(producerPublishErrors.WithLabelValues("storefront.cart"))
	err = p.Publish(context.Background(), "storefront.cart", event)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish event to storefront.cart")
	assert.Equal(t, before+1, testutil.ToFloat64(producerPublishErrors.WithLabelValues("storefront.cart")))
}

func TestProducer_PingWithoutBrokers(t *testing.T) {
	p := NewProducerWithWriter(&recordingWriter{}, nil, newTestLogger())
	assert.Error(t, p.Ping(context.Background()))
}

func TestProducer_Close(t *testing.T) {
	w := &recordingWriter{}
	require.NoError(t, NewProducerWithWriter(w, nil, newTestLogger()).Close())
	assert.True(t, w.closed)
}
