package aseq

import "context"

// Prepend yields v, then the upstream items.
func Prepend[T any](v T, s *Seq[T]) *Seq[T] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[T] {
		return &prependIter[T]{source: s.Iter(ctx), value: v, pending: true}
	})
}

// Postpend yields the upstream items, then v. If the upstream fails, v is
// never yielded.
func Postpend[T any](s *Seq[T], v T) *Seq[T] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[T] {
		return &postpendIter[T]{source: s.Iter(ctx), value: v}
	})
}

type prependIter[T any] struct {
	base[T]
	source  Iterator[T]
	value   T
	pending bool
}

func (it *prependIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	if it.pending {
		it.pending = false
		return it.value, true, nil
	}
	v, ok, err := it.source.Next(ctx)
	if err != nil {
		return it.fail(err)
	}
	if !ok {
		return it.exhaust()
	}
	return v, true, nil
}

func (it *prependIter[T]) Close() error { return it.release(it.source) }

type postpendIter[T any] struct {
	base[T]
	source Iterator[T]
	value  T
}

func (it *postpendIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	v, ok, err := it.source.Next(ctx)
	if err != nil {
		return it.fail(err)
	}
	if !ok {
		// Upstream is finished; after v the next pull reports End.
		it.state = done
		return it.value, true, nil
	}
	return v, true, nil
}

func (it *postpendIter[T]) Close() error { return it.release(it.source) }
