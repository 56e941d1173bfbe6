package observability

import (
	"context"
	stderrors "errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Providers holds the SDK providers installed by Setup.
type Providers struct {
	Meter  *sdkmetric.MeterProvider
	Tracer *sdktrace.TracerProvider
}

// Setup installs the meter and tracer providers when cfg.Enabled is set.
// A disabled config returns empty Providers whose Shutdown does nothing.
func Setup(ctx context.Context, cfg Config) (*Providers, error) {
	if !cfg.Enabled {
		return &Providers{}, nil
	}
	cfg.ApplyDefaults()

	mp, err := InitMeter(ctx, &cfg)
	if err != nil {
		return nil, err
	}
	tp, err := InitTracer(ctx, &cfg)
	if err != nil {
		_ = mp.Shutdown(ctx)
		return nil, err
	}
	return &Providers{Meter: mp, Tracer: tp}, nil
}

// Shutdown flushes and stops every installed provider.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return stderrors.Join(errs...)
}
