package executor

import "context"

// Awaitify wraps a blocking function so each call runs on ex and is awaited
// with the caller's context. A nil ex runs calls on new goroutines.
func Awaitify[R any](fn func() (R, error), ex Executor) func(ctx context.Context) (R, error) {
	ex = orDefault(ex)
	return func(ctx context.Context) (R, error) {
		return Submit(ex, fn).Get(ctx)
	}
}

// AwaitifyArg is Awaitify for a function taking one argument.
func AwaitifyArg[A, R any](fn func(A) (R, error), ex Executor) func(ctx context.Context, arg A) (R, error) {
	ex = orDefault(ex)
	return func(ctx context.Context, arg A) (R, error) {
		return Submit(ex, func() (R, error) { return fn(arg) }).Get(ctx)
	}
}
