package config

import (
	"github.com/kbukum/asyncseq/executor"
	"github.com/kbukum/asyncseq/logger"
	"github.com/kbukum/asyncseq/observability"
	"github.com/kbukum/asyncseq/validation"
	"github.com/kbukum/asyncseq/version"
)

// Config is the configuration of an asyncseq program.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging   logger.Config        `yaml:"logging" mapstructure:"logging"`
	Executor  executor.Config      `yaml:"executor" mapstructure:"executor"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults applies default values to every section.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Version == "" {
		c.Version = version.Version
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()

	if c.Executor.Name == "" {
		c.Executor.Name = c.Name
	}
	c.Executor.ApplyDefaults()

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	if c.Telemetry.ServiceVersion == "" {
		c.Telemetry.ServiceVersion = c.Version
	}
	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = c.Environment
	}
	c.Telemetry.ApplyDefaults()
}

// Validate checks the struct tags of every section.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
