package event

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/storage/mq"
)

type fakeConsumer struct {
	handlers map[string]mq.HandlerFunc
	ran      bool
	cleaned  bool
}

func (c *fakeConsumer) RegisterHandler(topic string, handler mq.HandlerFunc) error {
	if c.handlers == nil {
		c.handlers = map[string]mq.HandlerFunc{}
	}
	c.handlers[topic] = handler
	return nil
}

func (c *fakeConsumer) Run(context.Context) (mq.CleanupFunc, error) {
	c.ran = true
	return func() { c.cleaned = true }, nil
}

func TestService(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	consumer := &fakeConsumer{}

	cleanup, err := New(logger, consumer).Run(ctx)
	require.NoError(t, err)
	assert.True(t, consumer.ran)

	handler, ok := consumer.handlers[TopicTransactionRecorded]
	require.True(t, ok)

	publish := func(ev TransactionRecordedEvent) map[string]any {
		buf.Reset()
		payload, err := json.Marshal(ev)
		require.NoError(t, err)
		require.NoError(t, handler(ctx, TopicTransactionRecorded, payload))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		return line
	}

	ev := TransactionRecordedEvent{
		TransactionID: 7,
		Type:          "Sale",
		ProductID:     "P1",
		ProductName:   "Widget",
		Quantity:      4,
		Price:         decimal.RequireFromString("5.00"),
		Date:          time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		CurrentStock:  6,
	}

	t.Run("Should log recorded transaction", func(t *testing.T) {
		line := publish(ev)

		assert.Equal(t, "INFO", line["level"])
		assert.Equal(t, "transaction recorded", line["msg"])
		assert.Equal(t, "event", line["service"])
		assert.Equal(t, "P1", line["product_id"])
	})

	t.Run("Should warn on low stock", func(t *testing.T) {
		low := ev
		low.CurrentStock = 2
		low.LowStock = true

		line := publish(low)

		assert.Equal(t, "WARN", line["level"])
		assert.Equal(t, "product stock is low", line["msg"])
		assert.EqualValues(t, 2, line["current_stock"])
	})

	t.Run("Should reject malformed payload", func(t *testing.T) {
		assert.Error(t, handler(ctx, TopicTransactionRecorded, []byte("{")))
	})

	cleanup()
	assert.True(t, consumer.cleaned)
}
