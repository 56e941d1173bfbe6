// Package executor bridges blocking, synchronous work into context-aware
// asynchronous calls.
//
// An Executor accepts tasks through Submit. Three implementations are
// provided:
//
//   - CallerThread: runs each task immediately on the submitting goroutine
//   - Goroutine: runs each task on its own goroutine
//   - Pool: runs tasks on a bounded number of goroutines, bulkhead style
//
// Submit[T] turns a function into a Future, and Awaitify wraps a blocking
// function so every call is dispatched to an executor and awaited with a
// context:
//
//	pool, _ := executor.NewPool(executor.PoolConfig{Name: "io", MaxConcurrent: 4})
//	defer pool.Shutdown(ctx)
//
//	read := executor.AwaitifyArg(os.ReadFile, pool)
//	data, err := read(ctx, "config.yml")
//
// Every executor stops accepting work after Shutdown and rejects further
// submissions with errors.ErrShutdown.
package executor
