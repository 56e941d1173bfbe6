package aseq

import "io"

// state is the lifecycle of a cursor.
type state uint8

const (
	// running: the cursor is still pulling from its upstreams.
	running state = iota
	// draining: upstreams are finished; the cursor is emitting buffered output.
	draining
	// done: terminal. Next repeats the recorded outcome.
	done
)

func (s state) String() string {
	switch s {
	case running:
		return "running"
	case draining:
		return "draining"
	case done:
		return "done"
	}
	return "unknown"
}

// base holds the lifecycle shared by every cursor in this package. T is the
// element type the cursor yields.
type base[T any] struct {
	state  state
	err    error
	closed bool
}

// terminal reports whether the cursor has reached its final outcome.
func (b *base[T]) terminal() bool { return b.state == done }

// outcome repeats the terminal signal: End, or the recorded failure.
func (b *base[T]) outcome() (T, bool, error) {
	var zero T
	return zero, false, b.err
}

// exhaust records End.
func (b *base[T]) exhaust() (T, bool, error) {
	b.state = done
	var zero T
	return zero, false, nil
}

// fail records err as the terminal failure and returns it.
func (b *base[T]) fail(err error) (T, bool, error) {
	b.state = done
	b.err = err
	var zero T
	return zero, false, err
}

// release marks the cursor done and closes its upstreams once.
func (b *base[T]) release(upstreams ...io.Closer) error {
	b.state = done
	if b.closed {
		return nil
	}
	b.closed = true
	return closeAll(upstreams...)
}
