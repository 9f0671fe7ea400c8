package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestProvider(t *testing.T) (*MetricsProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := NewMetricsProvider(Config{Enabled: true, ServiceName: "lotobot-test", Environment: "test"})
	require.NoError(t, mp.initializeWithReader(reader, false))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()

	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetricsProvider_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	for _, cfg := range []Config{
		{Enabled: false},
		{Enabled: true, ExporterType: "none"},
	} {
		mp := NewMetricsProvider(cfg)
		require.NoError(t, mp.Initialize(context.Background()))
		assert.False(t, mp.isEnabled())

		mp.RecordDraw(context.Background())
		mp.RecordOperation(context.Background(), "game_draw", "", time.Millisecond)
		mp.RecordGameEnded(context.Background(), 4, 2, 10)
		require.NoError(t, mp.Shutdown(context.Background()))
	}
}

func TestMetricsProvider_UnknownExporter(t *testing.T) {
	t.Parallel()

	mp := NewMetricsProvider(Config{Enabled: true, ExporterType: "carrier-pigeon"})
	assert.Error(t, mp.Initialize(context.Background()))
}

func TestMetricsProvider_RecordsGameMetrics(t *testing.T) {
	t.Parallel()

	mp, reader := newTestProvider(t)
	ctx := context.Background()

	mp.RecordDraw(ctx)
	mp.RecordDraw(ctx)
	mp.RecordGameEnded(ctx, 4, 2, 10)
	mp.RecordOperation(ctx, "game_draw", "", 3*time.Millisecond)
	mp.RecordOperation(ctx, "game_draw", "rate_limited", time.Millisecond)

	data := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, data[DrawsTotal]))
	assert.Equal(t, int64(1), sumOf(t, data[GamesEndedTotal]))
	assert.Equal(t, int64(2), sumOf(t, data[WinnersTotal]))
	assert.Equal(t, int64(2), sumOf(t, data[CommandsTotal]))

	commands := data[CommandsTotal].(metricdata.Sum[int64])
	outcomes := make(map[string]int64)
	for _, dp := range commands.DataPoints {
		v, _ := dp.Attributes.Value(LabelOutcome)
		outcomes[v.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{OutcomeOK: 1, "rate_limited": 1}, outcomes)

	pot, ok := data[GamePot].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, pot.DataPoints, 1)
	assert.Equal(t, 10.0, pot.DataPoints[0].Sum)
}

func TestQueryTracer(t *testing.T) {
	t.Parallel()

	mp, reader := newTestProvider(t)
	tracer := NewQueryTracer(mp)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tracer.now = func() time.Time { return clock }

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "  SELECT state FROM game_sessions"})
	clock = clock.Add(20 * time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "INSERT INTO rounds"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("boom")})

	// end without start is ignored
	tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})

	data := collect(t, reader)
	queries := data[DatabaseQueriesTotal].(metricdata.Sum[int64])
	statements := make(map[string]int64)
	for _, dp := range queries.DataPoints {
		v, _ := dp.Attributes.Value(LabelStatement)
		statements[v.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{"select": 1, "insert": 1}, statements)
}

func TestStatementKind(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"SELECT 1":                   "select",
		"\n\tinsert into x values()": "insert",
		"":                           "unknown",
	}
	for sql, want := range tests {
		assert.Equal(t, want, statementKind(sql))
	}
}
