package aseq

import (
	"context"

	"github.com/kbukum/asyncseq/validation"
)

// Slice yields the items at positions start, start+step, ... below stop.
// It never pulls past the last position it will yield, so stop <= start
// yields nothing without touching the upstream.
func Slice[T any](s *Seq[T], start, stop, step int) *Seq[T] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[T](err)
	}
	err := validation.New().
		NonNegative("start", start).
		NonNegative("stop", stop).
		Positive("step", step).
		Err()
	if err != nil {
		return invalid[T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[T] {
		return &sliceAdapter[T]{source: s.Iter(ctx), want: start, stop: stop, step: step}
	})
}

// Head yields the first n items.
func Head[T any](s *Seq[T], n int) *Seq[T] {
	if err := validation.New().NonNegative("n", n).Err(); err != nil {
		return invalid[T](err)
	}
	return Slice(s, 0, n, 1)
}

type sliceAdapter[T any] struct {
	base[T]
	source Iterator[T]
	pulled int // upstream items consumed so far
	want   int // position of the next item to yield
	stop   int
	step   int
}

func (it *sliceAdapter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	if it.want >= it.stop {
		return it.exhaust()
	}
	for it.pulled < it.want {
		_, ok, err := it.source.Next(ctx)
		if err != nil {
			return it.fail(err)
		}
		if !ok {
			return it.exhaust()
		}
		it.pulled++
	}
	v, ok, err := it.source.Next(ctx)
	if err != nil {
		return it.fail(err)
	}
	if !ok {
		return it.exhaust()
	}
	it.pulled++
	if it.step > it.stop-it.want {
		it.want = it.stop
	} else {
		it.want += it.step
	}
	return v, true, nil
}

func (it *sliceAdapter[T]) Close() error { return it.release(it.source) }
