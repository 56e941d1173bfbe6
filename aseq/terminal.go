package aseq

import "context"

// Runnable is a fully-configured consumer ready to execute.
type Runnable struct {
	run func(ctx context.Context) error
}

// Run pulls until the sequence ends, fails, or the sink fails.
func (r *Runnable) Run(ctx context.Context) error {
	return r.run(ctx)
}

// Drain creates a Runnable that pulls all values and sends each to sink.
func Drain[T any](s *Seq[T], sink func(context.Context, T) error) *Runnable {
	return &Runnable{
		run: func(ctx context.Context) error {
			var sinkErr error
			err := consume(ctx, s, func(v T) bool {
				sinkErr = sink(ctx, v)
				return sinkErr == nil
			})
			if err != nil {
				return err
			}
			return sinkErr
		},
	}
}

// ForEach pulls all values and calls fn for each.
func ForEach[T any](ctx context.Context, s *Seq[T], fn func(context.Context, T) error) error {
	return Drain(s, fn).Run(ctx)
}

// Collect returns every value as a slice. On failure it returns the values
// pulled before the failure together with the error.
func Collect[T any](ctx context.Context, s *Seq[T]) ([]T, error) {
	var out []T
	err := consume(ctx, s, func(v T) bool {
		out = append(out, v)
		return true
	})
	return out, err
}
