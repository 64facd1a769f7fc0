package observability

import (
	"context"
	"testing"

	"streambot/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetricsProvider_RecordsDuelLifecycle(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp, err := NewMetricsProviderWithReader(config.NewTestConfig(), reader)
	require.NoError(t, err)

	mp.RecordDuelStarted()
	mp.RecordDuelStarted()
	mp.RecordDuelStarted()
	mp.RecordDuelResolved("p1", 40)
	mp.RecordDuelResolved("tie", 0)
	mp.RecordDuelExpired("posted")

	metrics := collect(t, reader)
	assert.Equal(t, int64(3), sumOf(t, metrics[DuelsStartedTotal]))
	assert.Equal(t, int64(0), sumOf(t, metrics[DuelsActive]))
	assert.Equal(t, int64(2), sumOf(t, metrics[DuelsResolvedTotal]))
	assert.Equal(t, int64(1), sumOf(t, metrics[DuelsExpiredTotal]))
	assert.Equal(t, int64(40), sumOf(t, metrics[PointsTransferredTotal]))
}

func TestMetricsProvider_DisabledIsNoop(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = false

	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))

	assert.NotPanics(t, func() {
		mp.RecordDuelStarted()
		mp.RecordDuelResolved("p2", 10)
		mp.RecordDuelExpired("accepted")
	})
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMetricsProvider_ExporterNone(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "none"

	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))
	assert.NotPanics(t, mp.RecordDuelStarted)
}

func TestMetricsProvider_UnknownExporter(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "carrier-pigeon"

	mp := NewMetricsProvider(cfg)
	assert.Error(t, mp.Initialize(context.Background()))
}
