package aseq

import "context"

// Enumerate tags each item with a counter that starts at start and advances
// only when an item is yielded.
func Enumerate[T any](s *Seq[T], start int) *Seq[Indexed[T]] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[Indexed[T]](err)
	}
	return newSeq(func(ctx context.Context) Iterator[Indexed[T]] {
		return &enumerateIter[T]{source: s.Iter(ctx), index: start}
	})
}

type enumerateIter[T any] struct {
	base[Indexed[T]]
	source Iterator[T]
	index  int
}

func (it *enumerateIter[T]) Next(ctx context.Context) (Indexed[T], bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	v, ok, err := it.source.Next(ctx)
	if err != nil {
		return it.fail(err)
	}
	if !ok {
		return it.exhaust()
	}
	out := Indexed[T]{Index: it.index, Value: v}
	it.index++
	return out, true, nil
}

func (it *enumerateIter[T]) Close() error { return it.release(it.source) }
