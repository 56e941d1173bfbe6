package aseq

import (
	"context"

	"github.com/kbukum/asyncseq/validation"
)

// Map transforms each value using fn. An error from fn ends the sequence.
func Map[I, O any](s *Seq[I], fn func(context.Context, I) (O, error)) *Seq[O] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[O](err)
	}
	if err := validation.New().NotNil("fn", fn).Err(); err != nil {
		return invalid[O](err)
	}
	return newSeq(func(ctx context.Context) Iterator[O] {
		return &mapIter[I, O]{source: s.Iter(ctx), fn: fn}
	})
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](s *Seq[T], fn func(T) bool) *Seq[T] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[T](err)
	}
	if err := validation.New().NotNil("fn", fn).Err(); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[T] {
		return &filterIter[T]{source: s.Iter(ctx), fn: fn}
	})
}

// Tap calls fn as a side-effect for each value, then passes the value through
// unchanged. Use for logging or metrics.
func Tap[T any](s *Seq[T], fn func(context.Context, T) error) *Seq[T] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[T](err)
	}
	if err := validation.New().NotNil("fn", fn).Err(); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[T] {
		return &tapIter[T]{source: s.Iter(ctx), fn: fn}
	})
}

// Buffer pulls upstream on a separate goroutine into a channel of the given
// size, decoupling the production rate from the consumption rate.
func Buffer[T any](s *Seq[T], size int) *Seq[T] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[T](err)
	}
	if err := validation.New().Positive("size", size).Err(); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[T] {
		source := s.Iter(ctx)
		bufCtx, cancel := context.WithCancel(ctx)
		ch := make(chan result[T], size)
		stopped := make(chan struct{})

		go func() {
			defer close(stopped)
			defer close(ch)
			for {
				val, ok, err := source.Next(bufCtx)
				if err != nil {
					select {
					case ch <- result[T]{err: err}:
					case <-bufCtx.Done():
					}
					return
				}
				if !ok {
					return
				}
				select {
				case ch <- result[T]{val: val, ok: true}:
				case <-bufCtx.Done():
					return
				}
			}
		}()

		return &bufferIter[T]{source: source, ch: ch, cancel: cancel, stopped: stopped}
	})
}

// --- Iterator implementations ---

type mapIter[I, O any] struct {
	base[O]
	source Iterator[I]
	fn     func(context.Context, I) (O, error)
}

func (it *mapIter[I, O]) Next(ctx context.Context) (O, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil {
		return it.fail(err)
	}
	if !ok {
		return it.exhaust()
	}
	out, err := it.fn(ctx, val)
	if err != nil {
		return it.fail(err)
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.release(it.source) }

type filterIter[T any] struct {
	base[T]
	source Iterator[T]
	fn     func(T) bool
}

func (it *filterIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return it.fail(err)
		}
		if !ok {
			return it.exhaust()
		}
		if it.fn(val) {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.release(it.source) }

type tapIter[T any] struct {
	base[T]
	source Iterator[T]
	fn     func(context.Context, T) error
}

func (it *tapIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil {
		return it.fail(err)
	}
	if !ok {
		return it.exhaust()
	}
	if err := it.fn(ctx, val); err != nil {
		return it.fail(err)
	}
	return val, true, nil
}

func (it *tapIter[T]) Close() error { return it.release(it.source) }

// bufferIter reads what the Buffer goroutine produced.
type bufferIter[T any] struct {
	base[T]
	source  Iterator[T]
	ch      <-chan result[T]
	cancel  context.CancelFunc
	stopped <-chan struct{}
}

func (it *bufferIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	select {
	case r, open := <-it.ch:
		if !open {
			return it.exhaust()
		}
		if r.err != nil {
			return it.fail(r.err)
		}
		return r.val, true, nil
	case <-ctx.Done():
		return it.fail(ctx.Err())
	}
}

// Close stops the producer goroutine and waits for it before closing the
// upstream, so the upstream is never pulled and closed concurrently.
func (it *bufferIter[T]) Close() error {
	if it.closed {
		return nil
	}
	it.cancel()
	<-it.stopped
	return it.release(it.source)
}
