package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kbukum/asyncseq/logger"
)

// EnvPrefix marks the environment variables the loader reads.
// ASEQ_EXECUTOR_MAX_CONCURRENT sets executor.max_concurrent.
const EnvPrefix = "ASEQ"

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadEnv sets the variables of a .env file that are not already set.
func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns the explicit paths in opts, searching for whichever
// is unset. The search looks in cmd/<name>, then config, then the working
// directory; an empty result means nothing was found.
func (cr *Resolver) ResolveFiles(name string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.find(name, "config.yml", "config.yaml", name+".yml")
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.find(name, ".env."+name, ".env")
	}
	return resolved
}

func (cr *Resolver) find(name string, files ...string) string {
	for _, dir := range searchDirs(name) {
		for _, file := range files {
			path := filepath.Join(dir, file)
			if cr.FileSystem.Exists(path) {
				return path
			}
		}
	}
	return ""
}

func searchDirs(name string) []string {
	return []string{
		filepath.Join("cmd", name),
		"config",
		".",
	}
}

// LoaderConfig holds dependencies and optional overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	Flags      *pflag.FlagSet
	FlagKeys   map[string]string // config key -> flag name
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithFlags overrides config keys with command-line flags. keys maps a
// config key such as "logging.level" to a flag name; only flags the user set
// take effect, and they win over files and the environment.
func WithFlags(fs *pflag.FlagSet, keys map[string]string) LoaderOption {
	return func(lc *LoaderConfig) {
		lc.Flags = fs
		lc.FlagKeys = keys
	}
}

// Load reads, defaults and validates the program configuration.
func Load(name string, opts ...LoaderOption) (*Config, error) {
	cfg := &Config{Name: name}
	if err := LoadConfig(name, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig resolves the config.yml and .env files for a program and
// decodes them into cfg. ASEQ_ environment variables override the files and
// set flags override everything.
func LoadConfig(name string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(name, lc)

	return loadFromResolvedFiles(name, cfg, files, lc)
}

func loadFromResolvedFiles(name string, cfg interface{}, files ResolvedFiles, lc LoaderConfig) error {
	v := viper.New()
	fs := lc.FileSystem
	log := logger.WithComponent("config")

	if files.ConfigFile != "" && fs.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			log.Warn("failed to load config file", logger.Fields("path", files.ConfigFile, logger.FieldError, err.Error()))
		}
	}

	// The .env file never overrides variables already in the environment.
	if files.EnvFile != "" && fs.Exists(files.EnvFile) {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			log.Warn("failed to load .env file", logger.Fields("path", files.EnvFile, logger.FieldError, err.Error()))
		}
	}
	bindEnv(v, EnvPrefix, os.Environ())
	bindFlags(v, lc.Flags, lc.FlagKeys)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for %s: %w", name, err)
	}
	return nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	if fs == nil {
		return
	}
	for key, name := range keys {
		if f := fs.Lookup(name); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}
}

// bindEnv sets every PREFIX_KEY=value entry of environ under each config key
// KEY could spell.
func bindEnv(v *viper.Viper, prefix string, environ []string) {
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		key, ok := strings.CutPrefix(name, prefix+"_")
		if !ok || key == "" {
			continue
		}
		for _, variant := range generateEnvKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// generateEnvKeyVariants lowercases an UPPER_SNAKE key and returns every way
// of reading each underscore as either a nesting dot or a literal underscore:
//
//	LOGGING_LEVEL -> [logging.level, logging_level]
//	EXECUTOR_MAX_CONCURRENT -> [executor.max.concurrent, executor.max_concurrent,
//	                            executor_max.concurrent, executor_max_concurrent]
func generateEnvKeyVariants(envKey string) []string {
	parts := strings.Split(strings.ToLower(envKey), "_")
	variants := []string{parts[0]}
	for _, part := range parts[1:] {
		next := make([]string, 0, 2*len(variants))
		for _, prefix := range variants {
			next = append(next, prefix+"."+part, prefix+"_"+part)
		}
		variants = next
	}
	return variants
}
