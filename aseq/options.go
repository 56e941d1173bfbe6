package aseq

// Option configures a reduction.
type Option[T any] func(*options[T])

type options[T any] struct {
	def      T
	hasDef   bool
	lo, hi   T
	hasRange bool
	start    T
	hasStart bool
}

// WithDefault is returned instead of an error when the input is empty.
// MinMax returns it as both bounds.
func WithDefault[T any](v T) Option[T] {
	return func(o *options[T]) {
		o.def, o.hasDef = v, true
	}
}

// WithDefaults sets the bounds MinMax returns for an empty input.
func WithDefaults[T any](lo, hi T) Option[T] {
	return func(o *options[T]) {
		o.lo, o.hi, o.hasRange = lo, hi, true
	}
}

// WithStart seeds Sum. An empty input then sums to start.
func WithStart[T any](v T) Option[T] {
	return func(o *options[T]) {
		o.start, o.hasStart = v, true
	}
}

func applyOptions[T any](opts []Option[T]) options[T] {
	var o options[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// bounds returns the MinMax defaults, if any were given.
func (o options[T]) bounds() (lo, hi T, ok bool) {
	switch {
	case o.hasRange:
		return o.lo, o.hi, true
	case o.hasDef:
		return o.def, o.def, true
	}
	return lo, hi, false
}
