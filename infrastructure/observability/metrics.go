package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// Config selects how metrics are exported
type Config struct {
	Enabled        bool
	ServiceName    string
	Environment    string
	ExporterType   string // "console", "otlp" or "none"
	OTLPEndpoint   string
	ExportInterval time.Duration
}

// MetricsProvider manages OpenTelemetry metrics for the game bot.
// Every Record method is a no-op until Initialize created the instruments.
type MetricsProvider struct {
	config        Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	mu            sync.RWMutex

	drawsCounter        metric.Int64Counter
	gamesEndedCounter   metric.Int64Counter
	winnersCounter      metric.Int64Counter
	potHist             metric.Float64Histogram
	participantsHist    metric.Int64Histogram
	commandsCounter     metric.Int64Counter
	commandDurationHist metric.Float64Histogram
	dbQueriesCounter    metric.Int64Counter
	dbQueryDurationHist metric.Float64Histogram
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg Config) *MetricsProvider {
	return &MetricsProvider{config: cfg}
}

// Initialize sets up the exporter, meter provider and instruments
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	if !mp.config.Enabled {
		log.Info("OpenTelemetry metrics disabled")
		return nil
	}

	var (
		exporter sdkmetric.Exporter
		err      error
	)
	switch mp.config.ExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(dialCtx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.ExporterType)
	}

	interval := mp.config.ExportInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return mp.initializeWithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)), true)
}

func (mp *MetricsProvider) initializeWithReader(reader sdkmetric.Reader, global bool) error {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.ServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	if global {
		otel.SetMeterProvider(provider)
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.meterProvider = provider
	mp.meter = provider.Meter(MetricPrefix)
	if err := mp.createInstruments(); err != nil {
		mp.meter = nil
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	log.Info("Metrics provider initialized successfully")
	return nil
}

func (mp *MetricsProvider) createInstruments() error {
	var err error

	if mp.drawsCounter, err = mp.meter.Int64Counter(DrawsTotal,
		metric.WithDescription("Total number of drawn numbers"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if mp.gamesEndedCounter, err = mp.meter.Int64Counter(GamesEndedTotal,
		metric.WithDescription("Total number of settled games"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if mp.winnersCounter, err = mp.meter.Int64Counter(WinnersTotal,
		metric.WithDescription("Total number of paid winners"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if mp.potHist, err = mp.meter.Float64Histogram(GamePot,
		metric.WithDescription("Tokens paid out per settled game"),
		metric.WithUnit("{token}"),
	); err != nil {
		return err
	}

	if mp.participantsHist, err = mp.meter.Int64Histogram(GameParticipants,
		metric.WithDescription("Ticket holders per settled game"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if mp.commandsCounter, err = mp.meter.Int64Counter(CommandsTotal,
		metric.WithDescription("Total number of game commands by outcome"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if mp.commandDurationHist, err = mp.meter.Float64Histogram(CommandDuration,
		metric.WithDescription("Duration of game commands in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0),
	); err != nil {
		return err
	}

	if mp.dbQueriesCounter, err = mp.meter.Int64Counter(DatabaseQueriesTotal,
		metric.WithDescription("Total number of database queries"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if mp.dbQueryDurationHist, err = mp.meter.Float64Histogram(DatabaseQueryDuration,
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0),
	); err != nil {
		return err
	}

	return nil
}

// Shutdown flushes and stops the meter provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordOperation records one game command and its outcome
func (mp *MetricsProvider) RecordOperation(ctx context.Context, operation string, outcome string, duration time.Duration) {
	if !mp.isEnabled() {
		return
	}
	if outcome == "" {
		outcome = OutcomeOK
	}

	attrs := metric.WithAttributes(
		attribute.String(LabelOperation, operation),
		attribute.String(LabelOutcome, outcome),
	)
	mp.commandsCounter.Add(ctx, 1, attrs)
	mp.commandDurationHist.Record(ctx, duration.Seconds(), attrs)
}

// RecordDraw records a drawn number
func (mp *MetricsProvider) RecordDraw(ctx context.Context) {
	if !mp.isEnabled() {
		return
	}
	mp.drawsCounter.Add(ctx, 1)
}

// RecordGameEnded records a settled game
func (mp *MetricsProvider) RecordGameEnded(ctx context.Context, ticketHolders, winners int, pot float64) {
	if !mp.isEnabled() {
		return
	}
	mp.gamesEndedCounter.Add(ctx, 1)
	mp.winnersCounter.Add(ctx, int64(winners))
	mp.participantsHist.Record(ctx, int64(ticketHolders))
	mp.potHist.Record(ctx, pot)
}

// RecordDatabaseQuery records a database statement with duration
func (mp *MetricsProvider) RecordDatabaseQuery(ctx context.Context, statement string, duration time.Duration, err error) {
	if !mp.isEnabled() {
		return
	}

	kvs := []attribute.KeyValue{attribute.String(LabelStatement, statement)}
	if err != nil {
		kvs = append(kvs, attribute.String(LabelErrorType, fmt.Sprintf("%T", err)))
	}
	attrs := metric.WithAttributes(kvs...)

	mp.dbQueriesCounter.Add(ctx, 1, attrs)
	mp.dbQueryDurationHist.Record(ctx, duration.Seconds(), attrs)
}

// isEnabled reports whether instruments exist. A provider with exporter "none" stays disabled.
func (mp *MetricsProvider) isEnabled() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.meter != nil
}
