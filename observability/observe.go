package observability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/asyncseq/aseq"
	"github.com/kbukum/asyncseq/logger"
)

// Observe wraps s so every cursor it produces is measured and traced. Each
// cursor gets a span named SpanCursor that lives from Iter to Close and
// carries a fresh cursor id, its pull count and its item count. A nil m skips
// metrics; a nil tracer uses the global provider.
//
// A nil or invalid s is returned unchanged, so the argument error still
// surfaces wherever s is consumed.
func Observe[T any](s *aseq.Seq[T], name string, m *Metrics, tracer trace.Tracer) *aseq.Seq[T] {
	if s == nil || s.Err() != nil {
		return s
	}
	if tracer == nil {
		tracer = Tracer(defaultTracerName)
	}
	log := logger.WithComponent("aseq.observe")
	return aseq.FromFunc(func(ctx context.Context) aseq.Iterator[T] {
		id := uuid.NewString()
		spanCtx, span := tracer.Start(ctx, SpanCursor, trace.WithAttributes(
			attribute.String(AttrSeqName, name),
			attribute.String(AttrCursorID, id),
		))
		if m != nil {
			m.RecordCursorOpen(spanCtx, name)
		}
		return &observedIter[T]{
			source:  s.Iter(spanCtx),
			name:    name,
			id:      id,
			ctx:     spanCtx,
			span:    span,
			metrics: m,
			log:     log,
		}
	})
}

type observedIter[T any] struct {
	source  aseq.Iterator[T]
	name    string
	id      string
	ctx     context.Context
	span    trace.Span
	metrics *Metrics
	log     *logger.Logger

	pulls  int64
	items  int64
	failed bool
	closed bool
}

func (it *observedIter[T]) Next(ctx context.Context) (T, bool, error) {
	start := time.Now()
	v, ok, err := it.source.Next(ctx)
	elapsed := time.Since(start)
	it.pulls++

	outcome := OutcomeEnd
	switch {
	case err != nil:
		outcome = OutcomeError
		if !it.failed {
			it.failed = true
			SetSpanError(it.span, err)
			it.log.Debug("cursor failed", logger.Fields(
				logger.FieldCursorID, it.id,
				logger.FieldOperation, it.name,
				logger.FieldError, err.Error(),
			))
		}
	case ok:
		outcome = OutcomeItem
		it.items++
	}
	if it.metrics != nil {
		it.metrics.RecordPull(ctx, it.name, outcome, elapsed)
	}
	return v, ok, err
}

func (it *observedIter[T]) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	err := it.source.Close()
	if err != nil {
		SetSpanError(it.span, err)
	}
	it.span.SetAttributes(
		attribute.Int64(AttrPulls, it.pulls),
		attribute.Int64(AttrItems, it.items),
	)
	it.span.End()
	if it.metrics != nil {
		it.metrics.RecordCursorClose(it.ctx, it.name)
	}
	it.log.Debug("cursor closed", logger.Fields(
		logger.FieldCursorID, it.id,
		logger.FieldOperation, it.name,
		logger.FieldItems, it.items,
	))
	return err
}
