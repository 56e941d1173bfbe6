package aseq

import (
	"context"

	"github.com/kbukum/asyncseq/errors"
	"github.com/kbukum/asyncseq/validation"
)

// First returns the first item. An empty input returns the WithDefault
// value or fails with errors.ErrNoSuchElement.
func First[T any](ctx context.Context, s *Seq[T], opts ...Option[T]) (T, error) {
	return at(ctx, s, "first", 0, opts)
}

// Nth returns the item at position n, counting from zero.
func Nth[T any](ctx context.Context, s *Seq[T], n int, opts ...Option[T]) (T, error) {
	if err := validation.New().NonNegative("n", n).Err(); err != nil {
		var zero T
		return zero, err
	}
	return at(ctx, s, "nth", n, opts)
}

// Last returns the final item, reading the whole sequence.
func Last[T any](ctx context.Context, s *Seq[T], opts ...Option[T]) (T, error) {
	o := applyOptions(opts)
	var last T
	seen := false
	err := consume(ctx, s, func(v T) bool {
		last, seen = v, true
		return true
	})
	switch {
	case err != nil:
		var zero T
		return zero, err
	case seen:
		return last, nil
	case o.hasDef:
		return o.def, nil
	}
	var zero T
	return zero, errors.NoSuchElement("last", -1)
}

func at[T any](ctx context.Context, s *Seq[T], op string, n int, opts []Option[T]) (T, error) {
	o := applyOptions(opts)
	var found T
	seen := false
	i := 0
	err := consume(ctx, s, func(v T) bool {
		if i == n {
			found, seen = v, true
			return false
		}
		i++
		return true
	})
	switch {
	case err != nil:
		var zero T
		return zero, err
	case seen:
		return found, nil
	case o.hasDef:
		return o.def, nil
	}
	var zero T
	return zero, errors.NoSuchElement(op, n)
}
