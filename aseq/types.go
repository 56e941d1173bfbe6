package aseq

import "golang.org/x/exp/constraints"

// Number is satisfied by every integer and floating-point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Pair holds two values produced together.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple holds three values produced together.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Indexed is an item tagged with its position.
type Indexed[T any] struct {
	Index int
	Value T
}
