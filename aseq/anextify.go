package aseq

import (
	"context"
	"iter"

	"github.com/kbukum/asyncseq/executor"
	"github.com/kbukum/asyncseq/validation"
)

// Anextify adapts a synchronous iter.Seq whose steps may block. Every step
// runs as a task on ex and is awaited with the pull's context; a nil ex runs
// steps on the pulling goroutine. A panic inside seq fails the cursor with an
// INTERNAL_ERROR.
//
// If a pull's context ends while a step is still running, the cursor fails
// with the context error and Close waits for that step before stopping seq.
func Anextify[T any](seq iter.Seq[T], ex executor.Executor) *Seq[T] {
	if err := validation.New().NotNil("seq", seq).Err(); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(_ context.Context) Iterator[T] {
		next, stop := iter.Pull(seq)
		run := ex
		if run == nil {
			run = executor.NewCallerThread()
		}
		return &anextIter[T]{ex: run, next: next, stop: stop}
	})
}

type anextIter[T any] struct {
	base[T]
	ex      executor.Executor
	next    func() (T, bool)
	stop    func()
	pending *executor.Future[result[T]]
}

func (it *anextIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	it.pending = executor.Submit(it.ex, func() (result[T], error) {
		v, ok := it.next()
		return result[T]{val: v, ok: ok}, nil
	})
	r, err := it.pending.Get(ctx)
	if err != nil {
		return it.fail(err)
	}
	if !r.ok {
		return it.exhaust()
	}
	return r.val, true, nil
}

func (it *anextIter[T]) Close() error {
	if it.closed {
		return nil
	}
	if it.pending != nil {
		<-it.pending.Done()
	}
	it.stop()
	return it.release()
}
