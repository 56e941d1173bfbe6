package aseq

import (
	"context"
	"sync"

	"github.com/kbukum/asyncseq/errors"
	"github.com/kbukum/asyncseq/validation"
)

// Zip yields one slice per round holding the next item of every sequence,
// in argument order. It stops as soon as any sequence ends. Each round
// pulls all sequences concurrently and waits for every pull to settle;
// failures of a round are reported together as an *errors.AggregateError.
func Zip[T any](seqs ...*Seq[T]) *Seq[[]T] {
	return zip(seqs, false)
}

// ZipStrict is Zip, except that sequences ending in different rounds fail
// with errors.ErrLengthMismatch.
func ZipStrict[T any](seqs ...*Seq[T]) *Seq[[]T] {
	return zip(seqs, true)
}

// Zip2 zips two sequences of different element types into pairs.
func Zip2[A, B any](a *Seq[A], b *Seq[B]) *Seq[Pair[A, B]] {
	return zip2(a, b, false)
}

// Zip2Strict is Zip2, except that sequences of different lengths fail with
// errors.ErrLengthMismatch.
func Zip2Strict[A, B any](a *Seq[A], b *Seq[B]) *Seq[Pair[A, B]] {
	return zip2(a, b, true)
}

func zip2[A, B any](a *Seq[A], b *Seq[B], strict bool) *Seq[Pair[A, B]] {
	if err := checkSeqs[upstream]("seqs", a, b); err != nil {
		return invalid[Pair[A, B]](err)
	}
	rows := zip([]*Seq[any]{boxed(a), boxed(b)}, strict)
	return Map(rows, func(_ context.Context, row []any) (Pair[A, B], error) {
		return Pair[A, B]{First: row[0].(A), Second: row[1].(B)}, nil
	})
}

func boxed[T any](s *Seq[T]) *Seq[any] {
	return Map(s, func(_ context.Context, v T) (any, error) { return v, nil })
}

func zip[T any](seqs []*Seq[T], strict bool) *Seq[[]T] {
	if err := validation.New().NotEmpty("seqs", len(seqs)).Err(); err != nil {
		return invalid[[]T](err)
	}
	if err := checkSeqs("seqs", seqs...); err != nil {
		return invalid[[]T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[[]T] {
		iters := make([]Iterator[T], len(seqs))
		for i, s := range seqs {
			iters[i] = s.Iter(ctx)
		}
		return &zipIter[T]{iters: iters, strict: strict}
	})
}

type zipIter[T any] struct {
	base[[]T]
	iters  []Iterator[T]
	strict bool
}

func (it *zipIter[T]) Next(ctx context.Context) ([]T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}

	results := make([]result[T], len(it.iters))
	var wg sync.WaitGroup
	wg.Add(len(it.iters))
	for i, src := range it.iters {
		go func(i int, src Iterator[T]) {
			defer wg.Done()
			v, ok, err := src.Next(ctx)
			results[i] = result[T]{val: v, ok: ok, err: err}
		}(i, src)
	}
	wg.Wait()

	row := make([]T, len(results))
	var failures []error
	ended := 0
	for i, r := range results {
		switch {
		case r.err != nil:
			failures = append(failures, r.err)
		case !r.ok:
			ended++
		default:
			row[i] = r.val
		}
	}

	if err := errors.Aggregate("zip", failures...); err != nil {
		return it.fail(err)
	}
	switch {
	case ended == 0:
		return row, true, nil
	case it.strict && ended < len(results):
		return it.fail(errors.LengthMismatch("zip"))
	default:
		return it.exhaust()
	}
}

func (it *zipIter[T]) Close() error { return it.release(closers(it.iters)...) }
