package aseq

import (
	"context"

	"github.com/kbukum/asyncseq/validation"
)

// Reverse yields the upstream items last to first. The first pull reads the
// whole upstream into memory.
func Reverse[T any](s *Seq[T]) *Seq[T] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[T] {
		return &reverseIter[T]{source: s.Iter(ctx)}
	})
}

// Tail yields the last n upstream items in their original order. The first
// pull reads the whole upstream, keeping at most n items.
func Tail[T any](s *Seq[T], n int) *Seq[T] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[T](err)
	}
	if err := validation.New().NonNegative("n", n).Err(); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[T] {
		return &tailIter[T]{source: s.Iter(ctx), buf: newFIFO[T](n)}
	})
}

type reverseIter[T any] struct {
	base[T]
	source Iterator[T]
	items  []T
}

func (it *reverseIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	if it.state == running {
		for {
			v, ok, err := it.source.Next(ctx)
			if err != nil {
				it.items = nil
				return it.fail(err)
			}
			if !ok {
				break
			}
			it.items = append(it.items, v)
		}
		it.state = draining
	}
	if len(it.items) == 0 {
		return it.exhaust()
	}
	last := len(it.items) - 1
	v := it.items[last]
	var zero T
	it.items[last] = zero
	it.items = it.items[:last]
	return v, true, nil
}

func (it *reverseIter[T]) Close() error {
	it.items = nil
	return it.release(it.source)
}

type tailIter[T any] struct {
	base[T]
	source Iterator[T]
	buf    *fifo[T]
}

func (it *tailIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	if it.state == running {
		for {
			v, ok, err := it.source.Next(ctx)
			if err != nil {
				it.buf.Clear()
				return it.fail(err)
			}
			if !ok {
				break
			}
			it.buf.Push(v)
		}
		it.state = draining
	}
	v, ok := it.buf.Pop()
	if !ok {
		return it.exhaust()
	}
	return v, true, nil
}

func (it *tailIter[T]) Close() error {
	it.buf.Clear()
	return it.release(it.source)
}
