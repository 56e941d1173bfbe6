package executor

import (
	"context"
	"sync"

	"github.com/kbukum/asyncseq/errors"
)

// Executor runs submitted tasks.
type Executor interface {
	// Submit schedules task. It returns an error when the task was not
	// accepted, for example after Shutdown.
	Submit(task func()) error
	// Shutdown stops accepting tasks and waits for the ones in progress until
	// ctx is done. Calling it more than once is safe.
	Shutdown(ctx context.Context) error
}

// lifecycle tracks in-progress tasks and the shutdown flag.
type lifecycle struct {
	name   string
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func (l *lifecycle) enter() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return errors.Shutdown(l.name)
	}
	l.wg.Add(1)
	return nil
}

func (l *lifecycle) leave() { l.wg.Done() }

// close marks the lifecycle closed and reports whether this call did it.
func (l *lifecycle) close() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.closed = true
	return true
}

func (l *lifecycle) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *lifecycle) wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CallerThread runs every task synchronously inside Submit.
type CallerThread struct {
	lc lifecycle
}

// NewCallerThread creates a CallerThread executor.
func NewCallerThread() *CallerThread {
	return &CallerThread{lc: lifecycle{name: "caller-thread executor"}}
}

// Submit runs task before returning.
func (e *CallerThread) Submit(task func()) error {
	if err := e.lc.enter(); err != nil {
		return err
	}
	defer e.lc.leave()
	task()
	return nil
}

// Shutdown rejects further tasks. Tasks already running on other goroutines
// are awaited until ctx is done; pass a cancelled context to skip waiting.
func (e *CallerThread) Shutdown(ctx context.Context) error {
	e.lc.close()
	return e.lc.wait(ctx)
}

// Goroutine runs every task on a new goroutine.
type Goroutine struct {
	lc lifecycle
}

// NewGoroutine creates a Goroutine executor.
func NewGoroutine() *Goroutine {
	return &Goroutine{lc: lifecycle{name: "goroutine executor"}}
}

// Submit starts task on its own goroutine.
func (e *Goroutine) Submit(task func()) error {
	if err := e.lc.enter(); err != nil {
		return err
	}
	go func() {
		defer e.lc.leave()
		task()
	}()
	return nil
}

// Shutdown rejects further tasks and waits for running ones until ctx is done.
func (e *Goroutine) Shutdown(ctx context.Context) error {
	e.lc.close()
	return e.lc.wait(ctx)
}

// orDefault returns ex, or a fresh Goroutine executor when ex is nil.
func orDefault(ex Executor) Executor {
	if ex == nil {
		return NewGoroutine()
	}
	return ex
}
