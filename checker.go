package checker

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"

	"github.com/adventkit/aoc-checker/discovery"
	"github.com/adventkit/aoc-checker/flags"
	"github.com/adventkit/aoc-checker/metrics"
	"github.com/adventkit/aoc-checker/reporting"
	"github.com/adventkit/aoc-checker/runner"
	"github.com/adventkit/aoc-checker/runtimes"
	"github.com/adventkit/aoc-checker/scaffold"
	"github.com/adventkit/aoc-checker/types"
)

// Checker wires discovery, execution and reporting for the CLI commands
type Checker struct {
	config   *Config
	registry *runtimes.Registry
	log      log.Logger
}

// New creates a checker using the built-in runtimes, overridden by
// config.RuntimesConfig when set
func New(config *Config) (*Checker, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	reg, err := runtimes.NewRegistry(runtimes.Config{
		Log:           config.Log,
		OverridesFile: config.RuntimesConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runtime registry: %w", err)
	}
	return newChecker(config, reg)
}

func newChecker(config *Config, reg *runtimes.Registry) (*Checker, error) {
	if config.Log == nil {
		config.Log = log.New()
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Stderr == nil {
		config.Stderr = os.Stderr
	}
	config.Log.Debug("Creating checker",
		"root", config.Root,
		"solutions", config.Layout.SolutionsDir,
		"io", config.Layout.IODir,
		"baseline", config.Baseline,
		"timeout", config.Timeout)
	return &Checker{config: config, registry: reg, log: config.Log}, nil
}

// CheckAll runs every discovered solution. It returns a *FailureError when a
// run failed or mismatched and a *RuntimeError when the sweep could not run.
func (c *Checker) CheckAll(ctx context.Context) (*runner.BatchResult, error) {
	solutions, err := discovery.Discover(c.config.Layout.SolutionsDir, c.languages())
	if err != nil {
		return nil, NewRuntimeError(err)
	}
	c.log.Info("Discovered solutions", "count", len(solutions), "dir", c.config.Layout.SolutionsDir)

	decider, interactive := c.baselineDecider()
	console := NewConsoleReporter(c.config.Stdout, c.config.Stderr, BatchMode, !interactive, c.log)
	if interactive {
		decider = announcing(console, decider)
	}

	reporters := runner.MultiReporter{console}
	var sink *reporting.SummarySink
	if c.config.ReportDir != "" {
		sink = reporting.NewSummarySink(c.config.ReportDir)
		reporters = append(reporters, sink)
	}

	r, err := c.newRunner(decider, reporters)
	if err != nil {
		return nil, NewRuntimeError(err)
	}

	result, runErr := r.RunAll(ctx, solutions)
	if err := console.Summary(result.Tally); err != nil {
		c.log.Warn("Failed to print summary", "error", err)
	}

	if c.config.SummaryTable {
		if err := NewConsoleResultFormatter(c.config.Stdout, c.log).FormatResults(result); err != nil {
			c.log.Warn("Failed to print results table", "error", err)
		}
	}
	if sink != nil {
		path, err := sink.Complete(result.RunID, RenderTable(result, false), result.Tally)
		if err != nil {
			c.log.Error("Failed to write run summary", "error", err)
		} else {
			c.log.Info("Wrote run summary", "path", path)
		}
	}
	c.writeMetrics()

	if runErr != nil {
		return result, NewRuntimeError(runErr)
	}
	c.log.Debug("Check completed", "run_id", result.RunID, "runs", result.Tally.Total,
		"failures", result.Tally.Failures(), "duration", result.Duration)
	if result.Tally.Failures() > 0 {
		return result, NewFailureError(result.Tally.Summary())
	}
	return result, nil
}

// CheckOne runs the solution of the runtime's home language for one part
// against one input variant and prints the detailed comparison
func (c *Checker) CheckOne(ctx context.Context, args CheckArgs) (*types.Report, error) {
	lang, err := c.registry.HomeLanguage(args.Runtime)
	if err != nil {
		return nil, NewRuntimeError(err)
	}
	solution := types.Solution{
		PuzzleID: types.PuzzleID{Year: args.Year, Day: args.Day, Part: args.Part},
		Language: lang,
	}

	decider, interactive := c.baselineDecider()
	console := NewConsoleReporter(c.config.Stdout, c.config.Stderr, DetailMode, !interactive, c.log)

	r, err := c.newRunner(decider, console)
	if err != nil {
		return nil, NewRuntimeError(err)
	}

	report, err := r.RunOne(ctx, solution, args.Runtime, args.Input)
	if err != nil {
		return nil, NewRuntimeError(err)
	}
	c.writeMetrics()

	if report.Verdict.Failed() {
		return report, NewFailureError(fmt.Sprintf("%s %s", report.ID(), report.Verdict))
	}
	return report, nil
}

// Init scaffolds the io directory and solution files of a puzzle day. The
// session key is read from the environment or the configured env file.
func (c *Checker) Init(ctx context.Context, args InitArgs, lang types.Language) error {
	return c.initWith(ctx, args, lang, scaffold.Config{})
}

func (c *Checker) initWith(ctx context.Context, args InitArgs, lang types.Language, base scaffold.Config) error {
	key, err := scaffold.LoadSessionKey(c.config.EnvFile)
	if err != nil {
		return NewRuntimeError(err)
	}

	base.Layout = c.config.Layout
	base.SessionKey = key
	base.Out = c.config.Stdout
	base.Log = c.log
	s, err := scaffold.New(base)
	if err != nil {
		return NewRuntimeError(err)
	}
	if err := s.Init(ctx, args.Year, args.Day, lang); err != nil {
		metrics.RecordErrorDetails("init", err)
		return NewRuntimeError(err)
	}
	return nil
}

func (c *Checker) newRunner(decider runner.BaselineDecider, reporter runner.Reporter) (*runner.Runner, error) {
	executor, err := runner.NewExecutor(runner.ExecutorConfig{
		Layout:   c.config.Layout,
		Registry: c.registry,
		Timeout:  c.config.Timeout,
		WorkDir:  c.config.Root,
		Log:      c.log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create executor: %w", err)
	}
	return runner.NewRunner(runner.Config{
		Layout:   c.config.Layout,
		Registry: c.registry,
		Executor: executor,
		Baseline: decider,
		Reporter: reporter,
		Log:      c.log,
	})
}

// baselineDecider returns the decider for the configured baseline mode and
// whether it prompts on the terminal
func (c *Checker) baselineDecider() (runner.BaselineDecider, bool) {
	switch c.config.Baseline {
	case flags.BaselineAccept:
		return runner.AlwaysAccept, false
	case flags.BaselineReject:
		return runner.NeverAccept, false
	}
	if c.config.Stdin == nil {
		return runner.NeverAccept, false
	}
	prompt := runner.NewPromptDecider(c.config.Stdin, c.config.Stdout)
	return prompt, prompt.Interactive()
}

// announcing prints the puzzle header before the decider prompts
func announcing(console *ConsoleReporter, decider runner.BaselineDecider) runner.BaselineDecider {
	return runner.BaselineFunc(func(ctx context.Context, report types.Report) (bool, error) {
		if err := console.Announce(report.Solution.PuzzleID); err != nil {
			return false, err
		}
		return decider.Accept(ctx, report)
	})
}

// languages lists the solution folders that have runtimes registered
func (c *Checker) languages() []types.Language {
	var langs []types.Language
	for _, lang := range types.KnownLanguages {
		if c.registry.HasLanguage(lang) {
			langs = append(langs, lang)
		}
	}
	return langs
}

func (c *Checker) writeMetrics() {
	if c.config.MetricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(c.config.MetricsFile); err != nil {
		c.log.Error("Failed to write metrics file", "error", err)
		return
	}
	c.log.Debug("Wrote metrics", "path", c.config.MetricsFile)
}
