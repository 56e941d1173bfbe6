package executor

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/kbukum/asyncseq/errors"
	"github.com/kbukum/asyncseq/logger"
)

// Future is the pending result of a submitted function.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(val T, err error) {
	f.val, f.err = val, err
	close(f.done)
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Get waits for the result. If ctx ends first it returns ctx.Err(); the
// function keeps running to completion on its executor.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	default:
	}
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit runs fn on ex and returns its Future. A nil ex runs fn on a new
// goroutine. A rejected submission resolves the Future with the rejection,
// and a panic in fn resolves it with an INTERNAL_ERROR.
func Submit[T any](ex Executor, fn func() (T, error)) *Future[T] {
	fut := newFuture[T]()
	task := func() {
		defer func() {
			if v := recover(); v != nil {
				logger.WithComponent("executor").Error("task panicked",
					logger.Fields("panic", fmt.Sprint(v), "stack", string(debug.Stack())))
				var zero T
				cause, ok := v.(error)
				if !ok {
					cause = fmt.Errorf("panic: %v", v)
				}
				fut.resolve(zero, errors.Internal(cause))
			}
		}()
		val, err := fn()
		fut.resolve(val, err)
	}
	if err := orDefault(ex).Submit(task); err != nil {
		var zero T
		fut.resolve(zero, err)
	}
	return fut
}
