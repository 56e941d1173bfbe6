package aseq

import (
	"context"
	"fmt"
	"sync/atomic"
)

var errBoom = fmt.Errorf("boom")

// probe is an upstream that counts pulls and closes, and can fail at a
// chosen position.
type probe struct {
	items  []int
	failAt int
	err    error
	pos    int
	pulls  atomic.Int32
	closes atomic.Int32
}

func newProbe(items ...int) *probe {
	return &probe{items: items, failAt: -1}
}

func (p *probe) failing(at int, err error) *probe {
	p.failAt, p.err = at, err
	return p
}

func (p *probe) Next(_ context.Context) (int, bool, error) {
	p.pulls.Add(1)
	if p.failAt >= 0 && p.pos == p.failAt {
		return 0, false, p.err
	}
	if p.pos >= len(p.items) {
		return 0, false, nil
	}
	v := p.items[p.pos]
	p.pos++
	return v, true, nil
}

func (p *probe) Close() error {
	p.closes.Add(1)
	return nil
}

// blocker yields its items, then blocks until the pull's context ends and
// returns onCancel, or the context error when onCancel is nil.
type blocker struct {
	items    []int
	pos      int
	onCancel error
}

func (b *blocker) Next(ctx context.Context) (int, bool, error) {
	if b.pos < len(b.items) {
		v := b.items[b.pos]
		b.pos++
		return v, true, nil
	}
	<-ctx.Done()
	if b.onCancel != nil {
		return 0, false, b.onCancel
	}
	return 0, false, ctx.Err()
}

func (b *blocker) Close() error { return nil }

// cursor erases the element type so one table can drive every adapter.
type cursor struct {
	next  func(ctx context.Context) (bool, error)
	close func() error
}

func erase[T any](s *Seq[T]) func(ctx context.Context) cursor {
	return func(ctx context.Context) cursor {
		it := s.Iter(ctx)
		return cursor{
			next: func(ctx context.Context) (bool, error) {
				_, ok, err := it.Next(ctx)
				return ok, err
			},
			close: it.Close,
		}
	}
}

func ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func gridEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !intSliceEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
