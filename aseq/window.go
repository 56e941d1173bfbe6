package aseq

import (
	"context"

	"github.com/kbukum/asyncseq/validation"
)

// Window yields every run of n consecutive items as a new slice:
// [0 1 2 3] with n=3 gives [0 1 2], [1 2 3]. An upstream shorter than n
// yields nothing.
func Window[T any](s *Seq[T], n int) *Seq[[]T] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[[]T](err)
	}
	if err := validation.New().Positive("n", n).Err(); err != nil {
		return invalid[[]T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[[]T] {
		return &windowIter[T]{source: s.Iter(ctx), buf: newFIFO[T](n)}
	})
}

// Pairwise yields overlapping pairs of consecutive items.
func Pairwise[T any](s *Seq[T]) *Seq[Pair[T, T]] {
	return Map(Window(s, 2), func(_ context.Context, w []T) (Pair[T, T], error) {
		return Pair[T, T]{First: w[0], Second: w[1]}, nil
	})
}

// Triplewise yields overlapping triples of consecutive items.
func Triplewise[T any](s *Seq[T]) *Seq[Triple[T, T, T]] {
	return Map(Window(s, 3), func(_ context.Context, w []T) (Triple[T, T, T], error) {
		return Triple[T, T, T]{First: w[0], Second: w[1], Third: w[2]}, nil
	})
}

type windowIter[T any] struct {
	base[[]T]
	source Iterator[T]
	buf    *fifo[T]
}

// Next fills the window on the first pull and slides it by one afterwards.
// A failure or an early end while filling discards the partial window.
func (it *windowIter[T]) Next(ctx context.Context) ([]T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	for {
		v, ok, err := it.source.Next(ctx)
		if err != nil {
			it.buf.Clear()
			return it.fail(err)
		}
		if !ok {
			it.buf.Clear()
			return it.exhaust()
		}
		it.buf.Push(v)
		if it.buf.Full() {
			return it.buf.Snapshot(), true, nil
		}
	}
}

func (it *windowIter[T]) Close() error { return it.release(it.source) }
