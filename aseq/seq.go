package aseq

import (
	"context"
	"io"

	"github.com/kbukum/asyncseq/errors"
)

// Iterator provides pull-based sequential access to a stream of values.
// Structurally compatible with the pipeline iterators used across the stack.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases the iterator and every upstream iterator it owns.
	Close() error
}

// Seq is a lazy asynchronous sequence. Every call to Iter produces a fresh,
// independent cursor.
type Seq[T any] struct {
	create func(ctx context.Context) Iterator[T]
	err    error
}

// Iter returns a new cursor. The caller must Close it. The context is the
// cursor's lifetime context: background work started by the cursor, such as
// Race's in-flight pulls, is bound to it.
func (s *Seq[T]) Iter(ctx context.Context) Iterator[T] {
	if s.err != nil {
		return &failedIter[T]{err: s.err}
	}
	return s.create(ctx)
}

// Err reports the argument error recorded when the sequence was built, if
// any. Cursors of such a sequence fail with the same error on the first pull.
func (s *Seq[T]) Err() error {
	return s.err
}

func newSeq[T any](create func(ctx context.Context) Iterator[T]) *Seq[T] {
	return &Seq[T]{create: create}
}

func invalid[T any](err error) *Seq[T] {
	return &Seq[T]{err: err}
}

// upstream is the part of Seq that argument checking needs, independent of
// the element type.
type upstream interface {
	Err() error
}

// checkSeqs rejects nil sequences and carries forward construction errors of
// upstream sequences.
func checkSeqs[S upstream](param string, seqs ...S) error {
	for _, s := range seqs {
		if isNilSeq(s) {
			return errors.InvalidArgument(param, "must be a sequence, got nil")
		}
		if err := s.Err(); err != nil {
			return err
		}
	}
	return nil
}

func isNilSeq(s upstream) bool {
	if s == nil {
		return true
	}
	n, ok := s.(interface{ isNil() bool })
	return ok && n.isNil()
}

func (s *Seq[T]) isNil() bool { return s == nil }

// result carries a value or error through a channel.
type result[T any] struct {
	val T
	ok  bool
	err error
}

// closeAll closes every iterator and returns the first error.
func closeAll(iters ...io.Closer) error {
	var firstErr error
	for _, it := range iters {
		if it == nil {
			continue
		}
		if err := it.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// failedIter is the cursor of a sequence built with invalid arguments.
type failedIter[T any] struct {
	err error
}

func (it *failedIter[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, it.err
}

func (it *failedIter[T]) Close() error { return nil }

func closers[T any](iters []Iterator[T]) []io.Closer {
	out := make([]io.Closer, len(iters))
	for i, it := range iters {
		out[i] = it
	}
	return out
}
