package executor

import (
	"fmt"
	"runtime"
	"time"

	"github.com/kbukum/asyncseq/validation"
)

// Executor kinds accepted by Config.Kind.
const (
	KindCaller    = "caller"
	KindGoroutine = "goroutine"
	KindPool      = "pool"
)

// Config selects and configures an executor.
type Config struct {
	Kind          string        `yaml:"kind" mapstructure:"kind" validate:"oneof=caller goroutine pool"`
	Name          string        `yaml:"name" mapstructure:"name" validate:"required"`
	MaxConcurrent int           `yaml:"max_concurrent" mapstructure:"max_concurrent" validate:"min=1"`
	MaxWait       time.Duration `yaml:"max_wait" mapstructure:"max_wait" validate:"gte=0"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Kind == "" {
		c.Kind = KindGoroutine
	}
	if c.Name == "" {
		c.Name = "default"
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = runtime.NumCPU()
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// New builds the executor described by cfg.
func New(cfg Config) (Executor, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case KindCaller:
		return NewCallerThread(), nil
	case KindGoroutine:
		return NewGoroutine(), nil
	case KindPool:
		p, err := NewPool(PoolConfig{
			Name:          cfg.Name,
			MaxConcurrent: cfg.MaxConcurrent,
			MaxWait:       cfg.MaxWait,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("executor: unknown kind %q", cfg.Kind)
}
