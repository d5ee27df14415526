package outbox_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/inventory-ledger/pkg/correlationid"
	"github.com/tuanvumaihuynh/inventory-ledger/pkg/outbox"
)

func TestHeadersRoundTrip(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)
	ctx = correlationid.NewContext(ctx, "corr-1")

	headers := outbox.BuildHeaders(ctx)
	assert.Equal(t, "corr-1", headers[correlationid.Header])
	assert.Contains(t, headers, "traceparent")

	rec := &kgo.Record{}
	for k, v := range headers {
		rec.Headers = append(rec.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}

	out := outbox.ExtractContextFromHeaders(context.Background(), outbox.HeadersFromRecord(rec))

	id, ok := correlationid.FromContext(out)
	assert.True(t, ok)
	assert.Equal(t, "corr-1", id)
	assert.Equal(t, traceID, trace.SpanContextFromContext(out).TraceID())
}
