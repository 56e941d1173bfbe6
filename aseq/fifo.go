package aseq

// fifo is a fixed-capacity ring buffer. Pushing into a full fifo evicts the
// oldest item.
type fifo[T any] struct {
	buf  []T
	head int
	size int
}

func newFIFO[T any](capacity int) *fifo[T] {
	return &fifo[T]{buf: make([]T, capacity)}
}

func (q *fifo[T]) Len() int { return q.size }

func (q *fifo[T]) Full() bool { return q.size == len(q.buf) }

// Push appends v, dropping the oldest item when full. A zero-capacity fifo
// discards everything.
func (q *fifo[T]) Push(v T) {
	if len(q.buf) == 0 {
		return
	}
	if q.Full() {
		q.buf[q.head] = v
		q.head = (q.head + 1) % len(q.buf)
		return
	}
	q.buf[(q.head+q.size)%len(q.buf)] = v
	q.size++
}

// Pop removes and returns the oldest item.
func (q *fifo[T]) Pop() (v T, ok bool) {
	if q.size == 0 {
		return v, false
	}
	v = q.buf[q.head]
	var zero T
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v, true
}

// Snapshot copies the items oldest first.
func (q *fifo[T]) Snapshot() []T {
	out := make([]T, q.size)
	for i := range out {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	return out
}

// Clear drops every item.
func (q *fifo[T]) Clear() {
	clear(q.buf)
	q.head = 0
	q.size = 0
}
