package observability

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type queryStartKey struct{}

type queryStart struct {
	statement string
	at        time.Time
}

// QueryTracer is a pgx.QueryTracer feeding the database metrics
type QueryTracer struct {
	metrics *MetricsProvider
	now     func() time.Time
}

var _ pgx.QueryTracer = (*QueryTracer)(nil)

// NewQueryTracer creates a tracer recording into metrics
func NewQueryTracer(metrics *MetricsProvider) *QueryTracer {
	return &QueryTracer{metrics: metrics, now: time.Now}
}

// TraceQueryStart remembers the statement kind and start time
func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{
		statement: statementKind(data.SQL),
		at:        t.now(),
	})
}

// TraceQueryEnd records the query duration
func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	t.metrics.RecordDatabaseQuery(ctx, start.statement, t.now().Sub(start.at), data.Err)
}

// statementKind returns the leading SQL keyword in lower case, e.g. "select"
func statementKind(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
