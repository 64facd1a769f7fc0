package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"streambot/config"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// MetricsProvider manages OpenTelemetry metrics for the bot
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	duelsStartedCounter      metric.Int64Counter
	duelsActiveGauge         metric.Int64UpDownCounter
	duelsResolvedCounter     metric.Int64Counter
	duelsExpiredCounter      metric.Int64Counter
	pointsTransferredCounter metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// NewMetricsProviderWithReader creates a provider that records into reader
// regardless of the exporter configuration
func NewMetricsProviderWithReader(cfg *config.Config, reader sdkmetric.Reader) (*MetricsProvider, error) {
	mp := &MetricsProvider{config: cfg}
	mp.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	mp.meter = mp.meterProvider.Meter("streambot")
	if err := mp.createInstruments(); err != nil {
		return nil, err
	}
	mp.initialized = true
	return mp, nil
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Debug("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdkmetric.Exporter
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				exporter,
				sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
			),
		),
	)
	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter("streambot")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	log.Info("Metrics provider initialized successfully")
	return nil
}

// createInstruments creates all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.duelsStartedCounter, err = mp.meter.Int64Counter(
		DuelsStartedTotal,
		metric.WithDescription("Total number of duels started"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create duels started counter: %w", err)
	}

	// UpDownCounter for gauge-like behavior
	mp.duelsActiveGauge, err = mp.meter.Int64UpDownCounter(
		DuelsActive,
		metric.WithDescription("Current number of duels in progress"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create duels active gauge: %w", err)
	}

	mp.duelsResolvedCounter, err = mp.meter.Int64Counter(
		DuelsResolvedTotal,
		metric.WithDescription("Total number of duels resolved"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create duels resolved counter: %w", err)
	}

	mp.duelsExpiredCounter, err = mp.meter.Int64Counter(
		DuelsExpiredTotal,
		metric.WithDescription("Total number of duels torn down by a timeout"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create duels expired counter: %w", err)
	}

	mp.pointsTransferredCounter, err = mp.meter.Int64Counter(
		PointsTransferredTotal,
		metric.WithDescription("Total points moved between duel participants"),
		metric.WithUnit("{point}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create points transferred counter: %w", err)
	}

	return nil
}

// Shutdown flushes and stops the meter provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider == nil {
		return nil
	}
	if err := mp.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	log.Info("Metrics provider shut down")
	return nil
}

// RecordDuelStarted counts a new duel and raises the active gauge
func (mp *MetricsProvider) RecordDuelStarted() {
	if !mp.isEnabled() {
		return
	}
	ctx := context.Background()
	mp.duelsStartedCounter.Add(ctx, 1)
	mp.duelsActiveGauge.Add(ctx, 1)
}

// RecordDuelResolved counts a finished duel and the points it moved
func (mp *MetricsProvider) RecordDuelResolved(outcome string, transferred int64) {
	if !mp.isEnabled() {
		return
	}
	ctx := context.Background()
	mp.duelsResolvedCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String(LabelOutcome, outcome)),
	)
	mp.duelsActiveGauge.Add(ctx, -1)
	if transferred > 0 {
		mp.pointsTransferredCounter.Add(ctx, transferred)
	}
}

// RecordDuelExpired counts a timed out duel by the state it stalled in
func (mp *MetricsProvider) RecordDuelExpired(stage string) {
	if !mp.isEnabled() {
		return
	}
	ctx := context.Background()
	mp.duelsExpiredCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String(LabelStage, stage)),
	)
	mp.duelsActiveGauge.Add(ctx, -1)
}

// isEnabled checks if metrics are initialized and have instruments
func (mp *MetricsProvider) isEnabled() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.meter != nil
}
