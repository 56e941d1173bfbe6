package main

import (
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/kbukum/asyncseq/aseq"
	"github.com/kbukum/asyncseq/executor"
	"github.com/kbukum/asyncseq/observability"
)

// demoEnv is what every demo gets from run.
type demoEnv struct {
	opts    options
	out     io.Writer
	exec    executor.Executor
	metrics *observability.Metrics
}

// source returns the observed range selected by the flags.
func (e *demoEnv) source(name string) *aseq.Seq[int] {
	return e.observe(aseq.Range(e.opts.start, e.opts.stop, e.opts.step), name)
}

func (e *demoEnv) observe(s *aseq.Seq[int], name string) *aseq.Seq[int] {
	return observability.Observe(s, name, e.metrics, nil)
}

type demoFunc func(ctx context.Context, env *demoEnv) error

var demos = map[string]demoFunc{
	"window": runWindow,
	"batch":  runBatch,
	"race":   runRace,
	"zip":    runZip,
	"cycle":  runCycle,
	"stats":  runStats,
}

func printAll[T any](ctx context.Context, w io.Writer, s *aseq.Seq[T]) error {
	return aseq.ForEach(ctx, s, func(_ context.Context, v T) error {
		_, err := fmt.Fprintln(w, v)
		return err
	})
}

func runWindow(ctx context.Context, env *demoEnv) error {
	return printAll(ctx, env.out, aseq.Window(env.source("window"), env.opts.size))
}

func runBatch(ctx context.Context, env *demoEnv) error {
	return printAll(ctx, env.out, aseq.Batch(env.source("batch"), env.opts.size))
}

// runRace merges a slow upstream whose items are produced on the executor
// with a fast one, printing items in completion order.
func runRace(ctx context.Context, env *demoEnv) error {
	delay := env.opts.delay
	slowStep := executor.AwaitifyArg(func(v int) (int, error) {
		time.Sleep(delay)
		return v, nil
	}, env.exec)
	slow := aseq.Map(env.source("race.slow"), slowStep)
	fast := aseq.Map(env.source("race.fast"), func(_ context.Context, v int) (int, error) {
		return -v, nil
	})
	return printAll(ctx, env.out, aseq.Race(slow, fast))
}

// runZip pairs each value with its square computed on the executor.
func runZip(ctx context.Context, env *demoEnv) error {
	square := executor.AwaitifyArg(func(v int) (int, error) { return v * v, nil }, env.exec)
	pairs := aseq.Zip2(env.source("zip.left"), aseq.Map(env.source("zip.right"), square))
	return aseq.ForEach(ctx, pairs, func(_ context.Context, p aseq.Pair[int, int]) error {
		_, err := fmt.Fprintf(env.out, "%d %d\n", p.First, p.Second)
		return err
	})
}

func runCycle(ctx context.Context, env *demoEnv) error {
	return printAll(ctx, env.out, aseq.Head(aseq.Cycle(env.source("cycle")), env.opts.count))
}

// rangeValues is a blocking generator stepped through the executor by
// Anextify.
func rangeValues(start, stop, step int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for v := start; (step > 0 && v < stop) || (step < 0 && v > stop); v += step {
			if !yield(v) {
				return
			}
		}
	}
}

// runStats reduces the range several ways. Each reduction opens its own
// cursor on a reusable source.
func runStats(ctx context.Context, env *demoEnv) error {
	o := env.opts
	if o.step == 0 {
		// Range reports the zero step; Anextify would loop forever.
		return aseq.Range(o.start, o.stop, o.step).Err()
	}
	src := env.observe(aseq.FromFunc(func(ctx context.Context) aseq.Iterator[int] {
		return aseq.Anextify(rangeValues(o.start, o.stop, o.step), env.exec).Iter(ctx)
	}), "stats")

	n, err := aseq.Len(ctx, src)
	if err != nil {
		return err
	}
	sum, err := aseq.Sum(ctx, src, aseq.WithStart(0))
	if err != nil {
		return err
	}
	lo, hi, err := aseq.MinMax(ctx, src, aseq.WithDefaults(0, 0))
	if err != nil {
		return err
	}
	first, err := aseq.First(ctx, src, aseq.WithDefault(0))
	if err != nil {
		return err
	}
	last, err := aseq.Last(ctx, src, aseq.WithDefault(0))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.out, "len=%d sum=%d min=%d max=%d first=%d last=%d\n", n, sum, lo, hi, first, last)
	return err
}
