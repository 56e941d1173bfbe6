package executor

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/asyncseq/errors"
)

func TestNewPool_Validates(t *testing.T) {
	if _, err := NewPool(PoolConfig{Name: "p"}); !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT for zero slots, got %v", err)
	}
	if _, err := NewPool(PoolConfig{MaxConcurrent: 1}); !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT for missing name, got %v", err)
	}
}

func TestPool_LimitsConcurrency(t *testing.T) {
	p, err := NewPool(PoolConfig{Name: "test", MaxConcurrent: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var running, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	wg.Wait()

	if peak.Load() > 2 {
		t.Errorf("expected at most 2 concurrent tasks, got %d", peak.Load())
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestPool_TimesOutWaitingForSlot(t *testing.T) {
	var rejected atomic.Int32
	p, _ := NewPool(PoolConfig{
		Name:          "test",
		MaxConcurrent: 1,
		MaxWait:       20 * time.Millisecond,
		OnReject:      func(string) { rejected.Add(1) },
	})
	release := make(chan struct{})
	if err := p.Submit(func() { <-release }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.InUse() != 1 || p.Available() != 0 {
		t.Errorf("expected 1 in use and 0 available, got %d/%d", p.InUse(), p.Available())
	}

	err := p.Submit(func() {})
	if !stderrors.Is(err, errors.ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
	if rejected.Load() != 1 {
		t.Errorf("expected OnReject once, got %d", rejected.Load())
	}
	close(release)
	_ = p.Shutdown(context.Background())
}

func TestPool_ShutdownReleasesWaitingSubmitters(t *testing.T) {
	p, _ := NewPool(PoolConfig{Name: "test", MaxConcurrent: 1})
	release := make(chan struct{})
	_ = p.Submit(func() { <-release })

	errc := make(chan error, 1)
	go func() { errc <- p.Submit(func() {}) }()
	time.Sleep(10 * time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- p.Shutdown(context.Background()) }()

	select {
	case err := <-errc:
		if !stderrors.Is(err, errors.ErrShutdown) {
			t.Errorf("expected ErrShutdown for waiting submitter, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("waiting submitter was not released")
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
	if err := p.Submit(func() {}); !stderrors.Is(err, errors.ErrShutdown) {
		t.Errorf("expected ErrShutdown after shutdown, got %v", err)
	}
}

func TestPool_RecoversPanics(t *testing.T) {
	p, _ := NewPool(PoolConfig{Name: "test", MaxConcurrent: 1})
	if err := p.Submit(func() { panic("boom") }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.InUse() != 0 {
		t.Errorf("expected slot to be released after panic, got %d in use", p.InUse())
	}
}

func TestPool_FuturesAndAwaitify(t *testing.T) {
	p, _ := NewPool(DefaultPoolConfig("io"))
	defer p.Shutdown(context.Background())

	square := AwaitifyArg(func(n int) (int, error) { return n * n, nil }, p)
	for i := 1; i <= 5; i++ {
		got, err := square(context.Background(), i)
		if err != nil || got != i*i {
			t.Fatalf("square(%d) = %d, %v", i, got, err)
		}
	}
	if p.MaxConcurrent() != 10 {
		t.Errorf("expected default 10 slots, got %d", p.MaxConcurrent())
	}
}
