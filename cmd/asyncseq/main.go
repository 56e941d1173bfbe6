// Command asyncseq runs small demonstrations of the aseq adapters over a
// numeric range.
//
// Usage:
//
//	asyncseq [flags] <window|batch|race|zip|cycle|stats|version>
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/asyncseq/config"
	"github.com/kbukum/asyncseq/executor"
	"github.com/kbukum/asyncseq/logger"
	"github.com/kbukum/asyncseq/observability"
	"github.com/kbukum/asyncseq/version"
)

const programName = "asyncseq"

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"logging.level":           "log-level",
	"logging.format":          "log-format",
	"executor.kind":           "executor",
	"executor.max_concurrent": "workers",
	"telemetry.enabled":       "telemetry",
}

type options struct {
	configFile string
	envFile    string
	start      int
	stop       int
	step       int
	size       int
	count      int
	delay      time.Duration
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(1)
	}
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "path to config.yml")
	fs.StringVar(&opts.envFile, "env-file", "", "path to a .env file")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-format", "console", "log format (console, json)")
	fs.String("executor", executor.KindGoroutine, "executor kind (caller, goroutine, pool)")
	fs.Int("workers", 0, "pool size when --executor=pool")
	fs.Bool("telemetry", false, "export metrics and traces over OTLP")
	fs.IntVar(&opts.start, "start", 0, "first value of the range")
	fs.IntVar(&opts.stop, "stop", 10, "end of the range (exclusive)")
	fs.IntVar(&opts.step, "step", 1, "range step")
	fs.IntVar(&opts.size, "size", 3, "window or batch size")
	fs.IntVar(&opts.count, "count", 12, "items to take from an endless sequence")
	fs.DurationVar(&opts.delay, "delay", 5*time.Millisecond, "per-item delay of the slow race upstream")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <%s|version>\n\n", programName, demoNames())
		fs.PrintDefaults()
	}
	return fs
}

// run parses args, sets up the ambient stack and runs the selected command,
// writing its results to out.
func run(ctx context.Context, args []string, out io.Writer) error {
	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cmd := "window"
	if fs.NArg() > 0 {
		cmd = fs.Arg(0)
	}
	if cmd == "version" {
		_, err := fmt.Fprintln(out, version.Get().String())
		return err
	}
	demo, ok := demos[cmd]
	if !ok {
		return fmt.Errorf("unknown command %q, want one of %s or version", cmd, demoNames())
	}

	loadOpts := []config.LoaderOption{config.WithFlags(fs, flagKeys)}
	if opts.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(opts.configFile))
	}
	if opts.envFile != "" {
		loadOpts = append(loadOpts, config.WithEnvFile(opts.envFile))
	}
	cfg, err := config.Load(programName, loadOpts...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.WithComponent("cli")
	log.Debug("starting", version.Get().Fields())

	providers, err := observability.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	var metrics *observability.Metrics
	if cfg.Telemetry.Enabled {
		metrics, err = observability.NewMetrics(observability.Meter(programName))
		if err != nil {
			return fmt.Errorf("create metrics: %w", err)
		}
	}

	ex, err := executor.New(cfg.Executor)
	if err != nil {
		return fmt.Errorf("build executor: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ex.Shutdown(shutdownCtx); err != nil {
			log.Warn("executor shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	env := &demoEnv{
		opts:    opts,
		out:     out,
		exec:    ex,
		metrics: metrics,
	}
	started := time.Now()
	err = demo(ctx, env)
	fields := logger.DurationFields(cmd, time.Since(started))
	if err != nil {
		log.Error("demo failed", fields, logger.ErrorFields(cmd, err))
		return err
	}
	log.Info("demo finished", fields)
	return nil
}

func demoNames() string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, "|")
}
