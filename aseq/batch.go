package aseq

import (
	"context"

	"github.com/kbukum/asyncseq/errors"
	"github.com/kbukum/asyncseq/validation"
)

// Batch groups consecutive items into slices of n. The final slice holds
// whatever is left and may be shorter.
func Batch[T any](s *Seq[T], n int) *Seq[[]T] {
	return batch(s, n, false)
}

// BatchStrict is Batch, except that a short final group fails with
// errors.ErrIncompleteBatch instead of being yielded.
func BatchStrict[T any](s *Seq[T], n int) *Seq[[]T] {
	return batch(s, n, true)
}

func batch[T any](s *Seq[T], n int, strict bool) *Seq[[]T] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[[]T](err)
	}
	if err := validation.New().Positive("n", n).Err(); err != nil {
		return invalid[[]T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[[]T] {
		return &batchIter[T]{source: s.Iter(ctx), size: n, strict: strict}
	})
}

type batchIter[T any] struct {
	base[[]T]
	source Iterator[T]
	size   int
	strict bool
}

func (it *batchIter[T]) Next(ctx context.Context) ([]T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	group := make([]T, 0, it.size)
	for len(group) < it.size {
		v, ok, err := it.source.Next(ctx)
		if err != nil {
			return it.fail(err)
		}
		if !ok {
			break
		}
		group = append(group, v)
	}
	switch {
	case len(group) == 0:
		return it.exhaust()
	case len(group) < it.size && it.strict:
		return it.fail(errors.IncompleteBatch("batch", len(group), it.size))
	case len(group) < it.size:
		// Upstream is finished; the next pull reports End without asking again.
		it.state = done
	}
	return group, true, nil
}

func (it *batchIter[T]) Close() error { return it.release(it.source) }
