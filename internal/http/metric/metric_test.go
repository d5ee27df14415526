package metric_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/http/metric"
)

func TestNewWithRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metric.NewWithRegisterer(reg)

	m.RequestsTotal.WithLabelValues("GET", "/inventory", "200").Inc()
	m.RequestDuration.WithLabelValues("GET", "/inventory", "200").Observe(0.01)
	m.InflightRequests.Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/inventory", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.InflightRequests), 0)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"inventory_http_requests_total",
		"inventory_http_request_duration_seconds",
		"inventory_http_inflight_requests",
	}, names)
}
