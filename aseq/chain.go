package aseq

import (
	"context"

	"github.com/kbukum/asyncseq/validation"
)

// Chain yields every item of each sequence in argument order. A failure in
// any of them ends the chain with that failure.
func Chain[T any](seqs ...*Seq[T]) *Seq[T] {
	if err := validation.New().NotEmpty("seqs", len(seqs)).Err(); err != nil {
		return invalid[T](err)
	}
	if err := checkSeqs("seqs", seqs...); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[T] {
		iters := make([]Iterator[T], len(seqs))
		for i, s := range seqs {
			iters[i] = s.Iter(ctx)
		}
		return &chainIter[T]{iters: iters}
	})
}

type chainIter[T any] struct {
	base[T]
	iters []Iterator[T]
	index int
}

func (it *chainIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	for it.index < len(it.iters) {
		v, ok, err := it.iters[it.index].Next(ctx)
		if err != nil {
			return it.fail(err)
		}
		if ok {
			return v, true, nil
		}
		it.index++
	}
	return it.exhaust()
}

func (it *chainIter[T]) Close() error { return it.release(closers(it.iters)...) }
