package aseq

import "context"

// Cycle yields the upstream items, then replays them in order forever. An
// empty upstream yields nothing. Every item is kept in memory, so the first
// pass over an infinite upstream never ends and replay is never reached.
func Cycle[T any](s *Seq[T]) *Seq[T] {
	if err := checkSeqs("seq", s); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[T] {
		return &cycleIter[T]{source: s.Iter(ctx)}
	})
}

type cycleIter[T any] struct {
	base[T]
	source Iterator[T]
	seen   []T
	pos    int
}

func (it *cycleIter[T]) Next(ctx context.Context) (T, bool, error) {
	switch it.state {
	case done:
		return it.outcome()
	case running:
		v, ok, err := it.source.Next(ctx)
		if err != nil {
			it.seen = nil
			return it.fail(err)
		}
		if ok {
			it.seen = append(it.seen, v)
			return v, true, nil
		}
		if len(it.seen) == 0 {
			return it.exhaust()
		}
		it.state = draining
	}
	if err := ctx.Err(); err != nil {
		return it.fail(err)
	}
	v := it.seen[it.pos]
	it.pos = (it.pos + 1) % len(it.seen)
	return v, true, nil
}

func (it *cycleIter[T]) Close() error {
	it.seen = nil
	return it.release(it.source)
}
