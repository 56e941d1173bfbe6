package aseq

import (
	"context"

	"golang.org/x/exp/constraints"

	"github.com/kbukum/asyncseq/errors"
	"github.com/kbukum/asyncseq/validation"
)

// consume pulls items of s into fn until fn returns false or s ends. The
// cursor is always closed.
func consume[T any](ctx context.Context, s *Seq[T], fn func(T) bool) error {
	if err := checkSeqs("seq", s); err != nil {
		return err
	}
	it := s.Iter(ctx)
	defer it.Close()
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok || !fn(v) {
			return nil
		}
	}
}

// All reports whether every item is non-zero. It stops at the first zero
// item. An empty sequence gives true.
func All[T comparable](ctx context.Context, s *Seq[T]) (bool, error) {
	var zero T
	return AllFunc(ctx, s, func(v T) bool { return v != zero })
}

// AllFunc reports whether pred holds for every item, stopping at the first
// item for which it does not.
func AllFunc[T any](ctx context.Context, s *Seq[T], pred func(T) bool) (bool, error) {
	all := true
	err := consume(ctx, s, func(v T) bool {
		all = pred(v)
		return all
	})
	if err != nil {
		return false, err
	}
	return all, nil
}

// Any reports whether some item is non-zero. It stops at the first such
// item. An empty sequence gives false.
func Any[T comparable](ctx context.Context, s *Seq[T]) (bool, error) {
	var zero T
	return AnyFunc(ctx, s, func(v T) bool { return v != zero })
}

// AnyFunc reports whether pred holds for some item, stopping at the first
// one.
func AnyFunc[T any](ctx context.Context, s *Seq[T], pred func(T) bool) (bool, error) {
	found := false
	err := consume(ctx, s, func(v T) bool {
		found = pred(v)
		return !found
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Sum adds every item to the WithStart value, or to zero. An empty input
// returns the start value; with no start it returns the WithDefault value,
// or fails with errors.ErrEmptyInput.
func Sum[T Number](ctx context.Context, s *Seq[T], opts ...Option[T]) (T, error) {
	o := applyOptions(opts)
	total := o.start
	seen := false
	err := consume(ctx, s, func(v T) bool {
		total += v
		seen = true
		return true
	})
	switch {
	case err != nil:
		var zero T
		return zero, err
	case seen || o.hasStart:
		return total, nil
	case o.hasDef:
		return o.def, nil
	}
	var zero T
	return zero, errors.EmptyInput("sum")
}

// Min returns the smallest item; the first one wins ties. An empty input
// returns the WithDefault value or fails with errors.ErrEmptyInput.
func Min[T constraints.Ordered](ctx context.Context, s *Seq[T], opts ...Option[T]) (T, error) {
	return extreme(ctx, s, "min", identity[T], less[T], opts)
}

// Max returns the largest item; the first one wins ties. An empty input
// returns the WithDefault value or fails with errors.ErrEmptyInput.
func Max[T constraints.Ordered](ctx context.Context, s *Seq[T], opts ...Option[T]) (T, error) {
	return extreme(ctx, s, "max", identity[T], greater[T], opts)
}

// MinBy returns the item with the smallest key.
func MinBy[T any, K constraints.Ordered](ctx context.Context, s *Seq[T], key func(T) K, opts ...Option[T]) (T, error) {
	if err := validation.New().NotNil("key", key).Err(); err != nil {
		var zero T
		return zero, err
	}
	return extreme(ctx, s, "min", key, less[K], opts)
}

// MaxBy returns the item with the largest key.
func MaxBy[T any, K constraints.Ordered](ctx context.Context, s *Seq[T], key func(T) K, opts ...Option[T]) (T, error) {
	if err := validation.New().NotNil("key", key).Err(); err != nil {
		var zero T
		return zero, err
	}
	return extreme(ctx, s, "max", key, greater[K], opts)
}

// MinMax returns the smallest and the largest item in one pass. An empty
// input returns the WithDefaults (or WithDefault) bounds, or fails with
// errors.ErrEmptyInput.
func MinMax[T constraints.Ordered](ctx context.Context, s *Seq[T], opts ...Option[T]) (T, T, error) {
	return minMax(ctx, s, identity[T], opts)
}

// MinMaxBy is MinMax comparing items by key.
func MinMaxBy[T any, K constraints.Ordered](ctx context.Context, s *Seq[T], key func(T) K, opts ...Option[T]) (T, T, error) {
	if err := validation.New().NotNil("key", key).Err(); err != nil {
		var zero T
		return zero, zero, err
	}
	return minMax(ctx, s, key, opts)
}

func identity[T any](v T) T { return v }

func less[K constraints.Ordered](a, b K) bool { return a < b }

func greater[K constraints.Ordered](a, b K) bool { return a > b }

// extreme keeps the item whose key beats every other under better.
func extreme[T any, K constraints.Ordered](ctx context.Context, s *Seq[T], op string, key func(T) K, better func(a, b K) bool, opts []Option[T]) (T, error) {
	o := applyOptions(opts)
	var best T
	var bestKey K
	seen := false
	err := consume(ctx, s, func(v T) bool {
		k := key(v)
		if !seen || better(k, bestKey) {
			best, bestKey, seen = v, k, true
		}
		return true
	})
	switch {
	case err != nil:
		var zero T
		return zero, err
	case seen:
		return best, nil
	case o.hasDef:
		return o.def, nil
	}
	var zero T
	return zero, errors.EmptyInput(op)
}

func minMax[T any, K constraints.Ordered](ctx context.Context, s *Seq[T], key func(T) K, opts []Option[T]) (T, T, error) {
	o := applyOptions(opts)
	var lo, hi T
	var loKey, hiKey K
	seen := false
	err := consume(ctx, s, func(v T) bool {
		k := key(v)
		if !seen {
			lo, hi, loKey, hiKey, seen = v, v, k, k, true
			return true
		}
		if k < loKey {
			lo, loKey = v, k
		}
		if k > hiKey {
			hi, hiKey = v, k
		}
		return true
	})
	if err != nil {
		var zero T
		return zero, zero, err
	}
	if seen {
		return lo, hi, nil
	}
	if dlo, dhi, ok := o.bounds(); ok {
		return dlo, dhi, nil
	}
	var zero T
	return zero, zero, errors.EmptyInput("minmax")
}

// Len counts the items.
func Len[T any](ctx context.Context, s *Seq[T]) (int, error) {
	n := 0
	err := consume(ctx, s, func(T) bool {
		n++
		return true
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Empty reports whether s yields no items. It pulls at most once.
func Empty[T any](ctx context.Context, s *Seq[T]) (bool, error) {
	empty := true
	err := consume(ctx, s, func(T) bool {
		empty = false
		return false
	})
	if err != nil {
		return false, err
	}
	return empty, nil
}
