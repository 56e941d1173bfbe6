package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/asyncseq/aseq"
	"github.com/kbukum/asyncseq/validation"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	return m, reader
}

func newTestTracer(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, sr
}

// counter sums every data point of the named Int64 sum instrument.
func counter(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s: unexpected data type %T", name, m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func histogramCount(t *testing.T, reader *sdkmetric.ManualReader, name string) uint64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			h, ok := m.Data.(metricdata.Histogram[float64])
			if !ok {
				t.Fatalf("%s: unexpected data type %T", name, m.Data)
			}
			var total uint64
			for _, dp := range h.DataPoints {
				total += dp.Count
			}
			return total
		}
	}
	return 0
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestObserve_RecordsMetrics(t *testing.T) {
	m, reader := newTestMetrics(t)
	tp, _ := newTestTracer(t)

	s := Observe(aseq.Range(0, 3, 1), "numbers", m, tp.Tracer("test"))
	got, err := aseq.Collect(context.Background(), s)
	if err != nil || len(got) != 3 {
		t.Fatalf("Collect() = %v, %v", got, err)
	}

	if n := counter(t, reader, MetricPulls); n != 4 {
		t.Errorf("expected 4 pulls, got %d", n)
	}
	if n := counter(t, reader, MetricItems); n != 3 {
		t.Errorf("expected 3 items, got %d", n)
	}
	if n := counter(t, reader, MetricErrors); n != 0 {
		t.Errorf("expected no errors, got %d", n)
	}
	if n := counter(t, reader, MetricActiveCursors); n != 0 {
		t.Errorf("expected no open cursors after Collect, got %d", n)
	}
	if n := histogramCount(t, reader, MetricPullDuration); n != 4 {
		t.Errorf("expected 4 pull durations, got %d", n)
	}
}

func TestObserve_SpanPerCursor(t *testing.T) {
	tp, sr := newTestTracer(t)
	s := Observe(aseq.Range(0, 5, 1), "numbers", nil, tp.Tracer("test"))

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := aseq.First(ctx, s); err != nil {
			t.Fatalf("First() = %v", err)
		}
	}

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	ids := map[string]bool{}
	for _, span := range spans {
		if span.Name() != SpanCursor {
			t.Errorf("expected span %q, got %q", SpanCursor, span.Name())
		}
		id, ok := attr(span.Attributes(), AttrCursorID)
		if !ok || id.AsString() == "" {
			t.Fatal("expected a cursor id attribute")
		}
		ids[id.AsString()] = true
		if items, _ := attr(span.Attributes(), AttrItems); items.AsInt64() != 1 {
			t.Errorf("expected 1 item on the span, got %d", items.AsInt64())
		}
		if seq, _ := attr(span.Attributes(), AttrSeqName); seq.AsString() != "numbers" {
			t.Errorf("expected seq name 'numbers', got %q", seq.AsString())
		}
	}
	if len(ids) != 2 {
		t.Error("expected distinct cursor ids")
	}
}

func TestObserve_Failure(t *testing.T) {
	m, reader := newTestMetrics(t)
	tp, sr := newTestTracer(t)

	boom := fmt.Errorf("boom")
	failing := aseq.Tabulate(func(_ context.Context, i int) (int, error) {
		if i == 1 {
			return 0, boom
		}
		return i, nil
	}, 0)

	got, err := aseq.Collect(context.Background(), Observe(failing, "failing", m, tp.Tracer("test")))
	if err != boom {
		t.Fatalf("expected the upstream error unchanged, got %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected one item before the failure, got %v", got)
	}
	if n := counter(t, reader, MetricErrors); n != 1 {
		t.Errorf("expected 1 error, got %d", n)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status())
	}
	if len(spans[0].Events()) == 0 {
		t.Error("expected the error to be recorded as a span event")
	}
}

func TestObserve_CloseIsIdempotent(t *testing.T) {
	tp, sr := newTestTracer(t)
	it := Observe(aseq.Range(0, 5, 1), "numbers", nil, tp.Tracer("test")).Iter(context.Background())
	if err := it.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := it.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}
	if len(sr.Ended()) != 1 {
		t.Errorf("expected exactly one ended span, got %d", len(sr.Ended()))
	}
}

func TestObserve_InvalidSeqUnchanged(t *testing.T) {
	bad := aseq.Range(0, 1, 0)
	if got := Observe(bad, "bad", nil, nil); got != bad {
		t.Error("expected an invalid sequence to be returned unchanged")
	}
	if got := Observe[int](nil, "nil", nil, nil); got != nil {
		t.Error("expected nil to be returned unchanged")
	}
}

func TestObserve_GlobalTracer(t *testing.T) {
	s := Observe(aseq.Range(0, 2, 1), "numbers", nil, nil)
	n, err := aseq.Len(context.Background(), s)
	if err != nil || n != 2 {
		t.Errorf("Len() = %d, %v; want 2", n, err)
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	m.RecordCursorOpen(ctx, "s")
	m.RecordPull(ctx, "s", OutcomeItem, time.Millisecond)
	m.RecordPull(ctx, "s", OutcomeError, time.Millisecond)
	m.RecordCursorClose(ctx, "s")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("test-service")
	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{ServiceName: "svc", Endpoint: "collector:4318"}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "collector:4318" {
		t.Errorf("expected endpoint to be kept, got %q", cfg.Endpoint)
	}
	if cfg.Environment != "development" || cfg.Interval != 15*time.Second {
		t.Errorf("expected defaults to be filled, got %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled empty", Config{}, false},
		{"enabled", enabledConfig("svc"), false},
		{"enabled without endpoint", Config{Enabled: true, ServiceName: "svc"}, true},
		{"sample rate too high", Config{SampleRate: 1.5}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.Validate(tc.cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func enabledConfig(name string) Config {
	cfg := DefaultConfig(name)
	cfg.Enabled = true
	return cfg
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := sampler(tc.rate).Description(); got != tc.want {
				t.Errorf("sampler(%v) = %q, want %q", tc.rate, got, tc.want)
			}
		})
	}
}

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Meter != nil || p.Tracer != nil {
		t.Error("expected no providers when disabled")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
}

func TestInitTracer(t *testing.T) {
	cfg := DefaultConfig("test-service")
	tp, err := InitTracer(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("InitTracer() = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = tp.Shutdown(ctx)
}

func TestNewResource(t *testing.T) {
	res, err := newResource("svc", "2.0.0", "test")
	if err != nil {
		t.Fatalf("newResource() = %v", err)
	}
	v, ok := attr(res.Attributes(), AttrServiceName)
	if !ok || v.AsString() != "svc" {
		t.Errorf("expected service.name 'svc', got %v", v)
	}
	v, ok = attr(res.Attributes(), AttrEnvironment)
	if !ok || v.AsString() != "test" {
		t.Errorf("expected environment 'test', got %v", v)
	}
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test-operation")
	defer span.End()
	if span == nil || ctx == nil {
		t.Fatal("expected a span and a context")
	}
	SetSpanError(span, fmt.Errorf("ignored on non-recording span"))
}
