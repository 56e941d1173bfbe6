// Package aseq provides lazy, pull-based asynchronous sequence utilities.
//
// A Seq is a recipe: nothing runs until a cursor is obtained with Iter and
// pulled with Next. Each adapter owns exactly one cursor per upstream and
// issues at most one pull at a time on each, so composition gives natural
// backpressure.
//
// Next returns one of three outcomes:
//
//	v, true, nil      an item
//	zero, false, nil  the end of the sequence
//	zero, false, err  a failure
//
// End and failure are terminal. Once a cursor reports either, every later
// Next repeats the same outcome without touching its upstreams again. Close
// releases the cursor and every upstream cursor it owns, and is safe to call
// more than once. Reductions and terminals such as Collect always close the
// cursor they open.
//
// # Adapters
//
//   - Slice, Head: select items by position
//   - Window, Pairwise, Triplewise: sliding windows of fixed width
//   - Batch, BatchStrict: consecutive groups of fixed size
//   - Cycle: repeat the first pass forever
//   - Reverse, Tail: materialize, then replay
//   - Enumerate, Prepend, Postpend, Chain
//   - Map, Filter, Tap, Buffer
//
// # Concurrent merge
//
//   - Zip, ZipStrict, Zip2: lock-step tuples, one goroutine per upstream
//   - Race: items in completion order across upstreams
//
// Failures observed together by Zip or Race are reported as a single
// *errors.AggregateError carrying every one of them.
//
// # Reductions
//
// All, Any, Sum, Min, Max, MinMax (and their By variants), Len, Empty,
// First, Last and Nth consume a sequence and return a value. Without a
// WithDefault option, an empty input yields errors.ErrEmptyInput for
// aggregates and errors.ErrNoSuchElement for positional accessors.
//
// # Usage
//
//	windows := aseq.Window(aseq.Range(0, 5, 1), 3)
//	got, err := aseq.Collect(ctx, windows) // [[0 1 2] [1 2 3] [2 3 4]]
//
//	biggest, err := aseq.Max(ctx, aseq.Range(0, 0, 1), aseq.WithDefault(23)) // 23
package aseq
