package executor

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/kbukum/asyncseq/errors"
	"github.com/kbukum/asyncseq/logger"
	"github.com/kbukum/asyncseq/validation"
)

// PoolConfig configures a Pool.
type PoolConfig struct {
	// Name identifies the pool in logs and errors.
	Name string `mapstructure:"name" validate:"required"`
	// MaxConcurrent is the maximum number of tasks running at once.
	MaxConcurrent int `mapstructure:"max_concurrent" validate:"min=1"`
	// MaxWait bounds how long Submit waits for a free slot. 0 waits until a
	// slot frees up or the pool shuts down.
	MaxWait time.Duration `mapstructure:"max_wait" validate:"gte=0"`
	// OnReject is called when a submission is refused.
	OnReject func(name string) `mapstructure:"-"`
}

// DefaultPoolConfig returns sensible defaults.
func DefaultPoolConfig(name string) PoolConfig {
	return PoolConfig{
		Name:          name,
		MaxConcurrent: 10,
	}
}

// Pool limits the number of concurrently running tasks with a semaphore.
// Submit blocks while every slot is taken.
type Pool struct {
	config PoolConfig
	sem    chan struct{}
	quit   chan struct{}
	once   sync.Once
	lc     lifecycle
	log    *logger.Logger
}

// NewPool validates cfg and creates a Pool.
func NewPool(cfg PoolConfig) (*Pool, error) {
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	return &Pool{
		config: cfg,
		sem:    make(chan struct{}, cfg.MaxConcurrent),
		quit:   make(chan struct{}),
		lc:     lifecycle{name: fmt.Sprintf("pool %q", cfg.Name)},
		log:    logger.WithComponent("executor").WithFields(logger.Fields(logger.FieldExecutor, cfg.Name)),
	}, nil
}

// Submit waits for a free slot and starts task on a new goroutine holding it.
// A panic inside task is recovered and logged.
func (p *Pool) Submit(task func()) error {
	if err := p.lc.enter(); err != nil {
		p.reject()
		return err
	}
	if err := p.acquire(); err != nil {
		p.lc.leave()
		p.reject()
		return err
	}
	go func() {
		defer p.lc.leave()
		defer p.release()
		defer func() {
			if v := recover(); v != nil {
				p.log.Error("task panicked", logger.Fields("panic", fmt.Sprint(v), "stack", string(debug.Stack())))
			}
		}()
		task()
	}()
	return nil
}

// Shutdown rejects further tasks, releases submitters waiting for a slot and
// waits for running tasks until ctx is done.
func (p *Pool) Shutdown(ctx context.Context) error {
	if p.lc.close() {
		p.once.Do(func() { close(p.quit) })
	}
	return p.lc.wait(ctx)
}

func (p *Pool) acquire() error {
	select {
	case p.sem <- struct{}{}:
		return nil
	default:
	}

	var timeout <-chan time.Time
	if p.config.MaxWait > 0 {
		timer := time.NewTimer(p.config.MaxWait)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case p.sem <- struct{}{}:
		return nil
	case <-timeout:
		return errors.Timeout(fmt.Sprintf("pool %q submit", p.config.Name))
	case <-p.quit:
		return errors.Shutdown(p.lc.name)
	}
}

func (p *Pool) release() {
	<-p.sem
}

func (p *Pool) reject() {
	if p.config.OnReject != nil {
		p.config.OnReject(p.config.Name)
	}
}

// Available returns the number of free slots.
func (p *Pool) Available() int {
	return p.config.MaxConcurrent - len(p.sem)
}

// InUse returns the number of slots currently held by running tasks.
func (p *Pool) InUse() int {
	return len(p.sem)
}

// MaxConcurrent returns the slot count.
func (p *Pool) MaxConcurrent() int {
	return p.config.MaxConcurrent
}
