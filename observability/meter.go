package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/asyncseq/logger"
)

// Metric instrument names.
const (
	MetricPulls         = "aseq.pulls"
	MetricItems         = "aseq.items"
	MetricErrors        = "aseq.errors"
	MetricPullDuration  = "aseq.pull.duration"
	MetricActiveCursors = "aseq.cursors.active"
)

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider should be shut down on application exit.
func InitMeter(ctx context.Context, config *Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments Observe records cursor activity into.
type Metrics struct {
	pulls        metric.Int64Counter
	items        metric.Int64Counter
	errors       metric.Int64Counter
	pullDuration metric.Float64Histogram
	active       metric.Int64UpDownCounter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	pulls, err := meter.Int64Counter(MetricPulls,
		metric.WithDescription("Total number of cursor pulls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricPulls, err)
	}

	items, err := meter.Int64Counter(MetricItems,
		metric.WithDescription("Total number of items yielded"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricItems, err)
	}

	errs, err := meter.Int64Counter(MetricErrors,
		metric.WithDescription("Total number of pulls that failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrors, err)
	}

	pullDuration, err := meter.Float64Histogram(MetricPullDuration,
		metric.WithDescription("Duration of cursor pulls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricPullDuration, err)
	}

	active, err := meter.Int64UpDownCounter(MetricActiveCursors,
		metric.WithDescription("Number of open cursors"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricActiveCursors, err)
	}

	return &Metrics{
		pulls:        pulls,
		items:        items,
		errors:       errs,
		pullDuration: pullDuration,
		active:       active,
	}, nil
}

// RecordCursorOpen increments the open cursor count.
func (m *Metrics) RecordCursorOpen(ctx context.Context, seq string) {
	m.active.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrSeqName, seq)))
}

// RecordCursorClose decrements the open cursor count.
func (m *Metrics) RecordCursorClose(ctx context.Context, seq string) {
	m.active.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrSeqName, seq)))
}

// RecordPull records one pull and its outcome.
func (m *Metrics) RecordPull(ctx context.Context, seq string, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrSeqName, seq),
		attribute.String(AttrOutcome, outcome),
	)
	m.pulls.Add(ctx, 1, attrs)
	m.pullDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrSeqName, seq),
	))
	switch outcome {
	case OutcomeItem:
		m.items.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrSeqName, seq)))
	case OutcomeError:
		m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrSeqName, seq)))
	}
}
