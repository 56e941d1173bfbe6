package aseq

import (
	"context"
	"iter"

	"github.com/kbukum/asyncseq/validation"
)

// From creates a sequence over an existing Iterator. Every Iter call returns
// the same iterator, so the sequence can be consumed only once.
func From[T any](it Iterator[T]) *Seq[T] {
	if err := validation.New().NotNil("iterator", it).Err(); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(_ context.Context) Iterator[T] {
		return it
	})
}

// FromSlice creates a sequence over items.
func FromSlice[T any](items []T) *Seq[T] {
	return newSeq(func(_ context.Context) Iterator[T] {
		return &sliceIter[T]{items: items}
	})
}

// FromFunc creates a sequence from a factory that produces an Iterator.
func FromFunc[T any](fn func(ctx context.Context) Iterator[T]) *Seq[T] {
	if err := validation.New().NotNil("fn", fn).Err(); err != nil {
		return invalid[T](err)
	}
	return newSeq(fn)
}

// FromSeq adapts a synchronous iter.Seq. Each cursor drives its own
// iter.Pull, which Close stops.
func FromSeq[T any](seq iter.Seq[T]) *Seq[T] {
	if err := validation.New().NotNil("seq", seq).Err(); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(_ context.Context) Iterator[T] {
		next, stop := iter.Pull(seq)
		return &pullIter[T]{next: next, stop: stop}
	})
}

// Range yields start, start+step, ... up to but excluding stop. A negative
// step counts down. A zero step is rejected.
func Range[T Number](start, stop, step T) *Seq[T] {
	if err := validation.New().Custom(step != 0, "step", "must not be zero").Err(); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(_ context.Context) Iterator[T] {
		return &rangeIter[T]{next: start, stop: stop, step: step}
	})
}

// Count yields start, start+step, start+2*step, ... forever.
func Count[T Number](start, step T) *Seq[T] {
	return newSeq(func(_ context.Context) Iterator[T] {
		return &countIter[T]{next: start, step: step}
	})
}

// Repeat yields v exactly times times.
func Repeat[T any](v T, times int) *Seq[T] {
	if err := validation.New().NonNegative("times", times).Err(); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(_ context.Context) Iterator[T] {
		return &repeatIter[T]{value: v, left: times}
	})
}

// RepeatForever yields v endlessly.
func RepeatForever[T any](v T) *Seq[T] {
	return newSeq(func(_ context.Context) Iterator[T] {
		return &repeatIter[T]{value: v, left: -1}
	})
}

// Tabulate yields fn(ctx, start), fn(ctx, start+1), ... forever. An error
// returned by fn ends the sequence with that error.
func Tabulate[T any](fn func(ctx context.Context, i int) (T, error), start int) *Seq[T] {
	if err := validation.New().NotNil("fn", fn).Err(); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(_ context.Context) Iterator[T] {
		return &tabulateIter[T]{fn: fn, index: start}
	})
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type pullIter[T any] struct {
	base[T]
	next func() (T, bool)
	stop func()
}

func (it *pullIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	v, ok := it.next()
	if !ok {
		return it.exhaust()
	}
	return v, true, nil
}

func (it *pullIter[T]) Close() error {
	if !it.closed {
		it.stop()
	}
	return it.release()
}

type rangeIter[T Number] struct {
	next, stop, step T
	done             bool
}

func (it *rangeIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.done || (it.step > 0 && it.next >= it.stop) || (it.step < 0 && it.next <= it.stop) {
		var zero T
		return zero, false, nil
	}
	v := it.next
	it.next += it.step
	// A wrapped integer means v was the last value the type can reach.
	if (it.step > 0 && it.next < v) || (it.step < 0 && it.next > v) {
		it.done = true
	}
	return v, true, nil
}

func (it *rangeIter[T]) Close() error { return nil }

type countIter[T Number] struct {
	next, step T
}

func (it *countIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	v := it.next
	it.next += it.step
	return v, true, nil
}

func (it *countIter[T]) Close() error { return nil }

// repeatIter yields value left times; a negative left repeats forever.
type repeatIter[T any] struct {
	value T
	left  int
}

func (it *repeatIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.left == 0 {
		var zero T
		return zero, false, nil
	}
	if it.left < 0 {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, false, err
		}
	} else {
		it.left--
	}
	return it.value, true, nil
}

func (it *repeatIter[T]) Close() error { return nil }

type tabulateIter[T any] struct {
	base[T]
	fn    func(context.Context, int) (T, error)
	index int
}

func (it *tabulateIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	v, err := it.fn(ctx, it.index)
	if err != nil {
		return it.fail(err)
	}
	it.index++
	return v, true, nil
}

func (it *tabulateIter[T]) Close() error { return it.release() }
