package aseq

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/kbukum/asyncseq/errors"
	"github.com/kbukum/asyncseq/logger"
	"github.com/kbukum/asyncseq/validation"
)

// Race yields items from all sequences in the order they become available.
// Every sequence has exactly one pull in flight at a time; a sequence that
// ends is dropped, and Race ends once none is left.
//
// When pulls fail, Race collects every failure already resolved, cancels
// the remaining pulls, waits for them, and reports all real failures as one
// *errors.AggregateError. Cancellations caused by Race itself are not
// reported.
//
// In-flight pulls run under the context given to Iter, not the one given to
// Next, because they outlive a single Next call. Close cancels them, waits
// for them and logs, rather than returns, any failure they produced.
func Race[T any](seqs ...*Seq[T]) *Seq[T] {
	if err := validation.New().NotEmpty("seqs", len(seqs)).Err(); err != nil {
		return invalid[T](err)
	}
	if err := checkSeqs("seqs", seqs...); err != nil {
		return invalid[T](err)
	}
	return newSeq(func(ctx context.Context) Iterator[T] {
		iters := make([]Iterator[T], len(seqs))
		for i, s := range seqs {
			iters[i] = s.Iter(ctx)
		}
		raceCtx, cancel := context.WithCancel(ctx)
		return &raceIter[T]{
			iters:   iters,
			ctx:     raceCtx,
			cancel:  cancel,
			results: make(chan raceResult[T], len(iters)),
			log:     logger.WithComponent("aseq.race"),
		}
	})
}

type raceResult[T any] struct {
	index int
	result[T]
}

type raceIter[T any] struct {
	base[T]
	iters    []Iterator[T]
	ctx      context.Context
	cancel   context.CancelFunc
	launch   sync.Once
	wg       sync.WaitGroup
	results  chan raceResult[T]
	inflight int
	log      *logger.Logger
}

// schedule starts one pull on upstream i. The results channel has room for
// one result per upstream, so the send never blocks.
func (it *raceIter[T]) schedule(i int) {
	it.inflight++
	it.wg.Add(1)
	go func() {
		defer it.wg.Done()
		v, ok, err := it.iters[i].Next(it.ctx)
		it.results <- raceResult[T]{index: i, result: result[T]{val: v, ok: ok, err: err}}
	}()
}

func (it *raceIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.terminal() {
		return it.outcome()
	}
	it.launch.Do(func() {
		for i := range it.iters {
			it.schedule(i)
		}
	})

	for it.inflight > 0 {
		select {
		case r := <-it.results:
			it.inflight--
			switch {
			case r.err != nil:
				return it.fail(it.abort(r.err))
			case !r.ok:
				continue
			default:
				it.schedule(r.index)
				return r.val, true, nil
			}
		case <-ctx.Done():
			err := ctx.Err()
			it.discard("race.next")
			return it.fail(err)
		}
	}
	it.cancel()
	return it.exhaust()
}

// abort gathers first plus every failure that already resolved, then cancels
// and awaits the remaining pulls, keeping the failures that are not
// cancellations caused here.
func (it *raceIter[T]) abort(first error) error {
	it.state = draining
	failures := []error{first}
resolved:
	for it.inflight > 0 {
		select {
		case r := <-it.results:
			it.inflight--
			if r.err != nil {
				failures = append(failures, r.err)
			}
		default:
			break resolved
		}
	}
	it.cancel()
	it.wg.Wait()
	for ; it.inflight > 0; it.inflight-- {
		r := <-it.results
		if r.err != nil && !it.cancelledHere(r.err) {
			failures = append(failures, r.err)
		}
	}
	return errors.Aggregate("race", failures...)
}

// discard cancels and awaits every pull in flight, dropping results and
// logging failures.
func (it *raceIter[T]) discard(op string) {
	it.state = draining
	it.cancel()
	it.wg.Wait()
	for ; it.inflight > 0; it.inflight-- {
		r := <-it.results
		if r.err != nil && !it.cancelledHere(r.err) {
			it.log.Warn("discarding in-flight failure", logger.Fields(
				logger.FieldOperation, op,
				logger.FieldIndex, r.index,
				logger.FieldError, r.err.Error(),
			))
		}
	}
}

func (it *raceIter[T]) cancelledHere(err error) bool {
	return stderrors.Is(err, context.Canceled) && it.ctx.Err() != nil
}

func (it *raceIter[T]) Close() error {
	if it.closed {
		return nil
	}
	it.discard("race.close")
	return it.release(closers(it.iters)...)
}
