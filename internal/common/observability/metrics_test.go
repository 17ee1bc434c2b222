package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestObservability_RecordClaim(t *testing.T) {
	reader := metric.NewManualReader()
	obs := NewWithReader(reader, "enre-reclamos-test")
	ctx := context.Background()

	obs.RecordClaimProcessed(ctx, "claimed", true)
	obs.RecordClaimProcessed(ctx, "claimed", true)
	obs.RecordClaimDuration(ctx, 150*time.Millisecond, "claimed")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := map[string]metricdata.Metrics{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = m
	}

	processed, ok := names["claims.processed"]
	require.True(t, ok)
	sum, ok := processed.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)

	_, ok = names["claims.duration"]
	assert.True(t, ok)
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordClaimProcessed(context.Background(), "claimed", false)
		obs.RecordClaimDuration(context.Background(), time.Second, "claimed")
		obs.RecordScheduleToggle(context.Background(), "enable", "updated")
		obs.Shutdown()
	})

	empty := &Observability{}
	assert.NotPanics(t, func() {
		empty.RecordClaimProcessed(context.Background(), "claimed", false)
		empty.Shutdown()
	})
}
