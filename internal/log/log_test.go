package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/config"
	"github.com/tuanvumaihuynh/inventory-ledger/pkg/correlationid"
)

func TestEnrichedHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo}))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))
	ctx = correlationid.NewContext(ctx, "corr-1")

	logger.With(slog.String("service", "http")).InfoContext(ctx, "hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "http", line["service"])
	assert.Equal(t, "corr-1", line["correlation_id"])
	assert.Equal(t, traceID.String(), line["trace_id"])
	assert.Equal(t, spanID.String(), line["span_id"])

	t.Run("Should omit ids when absent", func(t *testing.T) {
		buf.Reset()
		logger.Info("plain")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.NotContains(t, line, "correlation_id")
		assert.NotContains(t, line, "trace_id")
	})

	t.Run("Should respect level", func(t *testing.T) {
		buf.Reset()
		logger.Debug("hidden")
		assert.Empty(t, buf.String())
	})
}

func TestTextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.Log{Format: config.LogFormatText, Level: slog.LevelDebug}))

	logger.Error("write failed", slog.Any("error", errors.New("boom")))

	assert.Contains(t, buf.String(), "write failed")
	assert.Contains(t, buf.String(), "boom")
}

func TestContextWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo}))

	ctx := ContextWithAttrs(context.Background(), slog.String("topic", "inventory.transaction.recorded"))
	ctx = ContextWithAttrs(ctx, slog.Int64("offset", 42))
	assert.Equal(t, ctx, ContextWithAttrs(ctx))

	logger.InfoContext(ctx, "handled")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "inventory.transaction.recorded", line["topic"])
	assert.InDelta(t, 42, line["offset"], 0)
}
