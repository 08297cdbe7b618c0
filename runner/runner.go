package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adventkit/aoc-checker/layout"
	"github.com/adventkit/aoc-checker/metrics"
	"github.com/adventkit/aoc-checker/runtimes"
	"github.com/adventkit/aoc-checker/types"
)

// BatchResult is the outcome of a RunAll sweep
type BatchResult struct {
	RunID    string
	Reports  []types.Report
	Tally    types.Tally
	Duration time.Duration
}

// ExitCode is 0 if and only if no run in the batch failed
func (b *BatchResult) ExitCode() int {
	return b.Tally.ExitCode()
}

// Config holds configuration for creating a new runner
type Config struct {
	Layout   layout.Layout
	Registry *runtimes.Registry
	Executor Executor
	// Baseline decides whether missing expected outputs are created.
	// Defaults to NeverAccept.
	Baseline BaselineDecider
	Reporter Reporter
	Log      log.Logger
}

// Runner executes solutions sequentially and compares their answers
type Runner struct {
	layout   layout.Layout
	registry *runtimes.Registry
	executor Executor
	baseline BaselineDecider
	reporter Reporter
	log      log.Logger
	tracer   trace.Tracer
}

// NewRunner creates a new solution runner
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if cfg.Executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}
	if cfg.Baseline == nil {
		cfg.Baseline = NeverAccept
	}
	if cfg.Reporter == nil {
		cfg.Reporter = MultiReporter(nil)
	}

	return &Runner{
		layout:   cfg.Layout,
		registry: cfg.Registry,
		executor: cfg.Executor,
		baseline: cfg.Baseline,
		reporter: cfg.Reporter,
		log:      cfg.Log,
		tracer:   otel.Tracer("solution runner"),
	}, nil
}

// RunAll runs every solution against the example and then the actual input,
// once per runtime registered for the solution's language. Solutions are
// expected in discovery order. A failing run never stops the batch; only
// context cancellation does, in which case the partial result is returned
// along with the context error.
func (r *Runner) RunAll(ctx context.Context, solutions []types.Solution) (*BatchResult, error) {
	runID := uuid.New().String()
	start := time.Now()
	r.log.Debug("Running all solutions", "run_id", runID, "solutions", len(solutions))

	ctx, span := r.tracer.Start(ctx, "batch", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("solutions", len(solutions)),
	))
	defer span.End()

	result := &BatchResult{RunID: runID}
	finish := func() {
		result.Duration = time.Since(start)
		metrics.RecordBatch(result.Tally, result.Duration)
		span.SetAttributes(attribute.Int("failures", result.Tally.Failures()))
	}

	for _, solution := range solutions {
		runtimesForLang := r.registry.RuntimesFor(solution.Language)
		if len(runtimesForLang) == 0 {
			r.log.Warn("No runtimes registered for language, skipping", "solution", solution)
			continue
		}
		if err := r.runSolution(ctx, solution, runtimesForLang, result); err != nil {
			finish()
			return result, err
		}
	}

	finish()
	r.log.Debug("Batch finished", "run_id", runID, "runs", result.Tally.Total,
		"failures", result.Tally.Failures(), "duration", result.Duration)
	return result, nil
}

func (r *Runner) runSolution(ctx context.Context, solution types.Solution, rts []types.Runtime, result *BatchResult) error {
	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("solution %s", solution))
	defer span.End()

	for _, variant := range types.InputVariants {
		for _, rt := range rts {
			if err := ctx.Err(); err != nil {
				span.SetStatus(codes.Error, "cancelled")
				return fmt.Errorf("batch cancelled: %w", err)
			}
			report := r.run(ctx, solution, rt, variant)
			result.Reports = append(result.Reports, report)
			result.Tally.Record(report.Verdict)
		}
	}
	return nil
}

// RunOne runs a single solution with one runtime against one input variant
func (r *Runner) RunOne(ctx context.Context, solution types.Solution, rt types.Runtime, variant types.InputVariant) (*types.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report := r.run(ctx, solution, rt, variant)
	return &report, nil
}

// run produces the report for one runtime and input variant and hands it to
// the reporter. It never panics.
func (r *Runner) run(ctx context.Context, solution types.Solution, rt types.Runtime, variant types.InputVariant) types.Report {
	report := r.runVariant(ctx, solution, rt, variant)

	metrics.RecordRun(rt, variant, report.Verdict, report.Elapsed)
	if report.Error != nil {
		metrics.RecordErrorDetails("run", report.Error)
	}
	r.report(ctx, report)
	return report
}

// report hands a finished run to the reporter. A failing or panicking
// reporter is logged and never aborts the batch.
func (r *Runner) report(ctx context.Context, report types.Report) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("reporter panic: %v", rec)
			r.log.Error("Reporter panicked", "report", report.ID(), "error", err)
			metrics.RecordErrorDetails("report", err)
		}
	}()
	if err := r.reporter.Report(ctx, report); err != nil {
		r.log.Error("Failed to report result", "report", report.ID(), "error", err)
	}
}

func (r *Runner) runVariant(ctx context.Context, solution types.Solution, rt types.Runtime, variant types.InputVariant) (report types.Report) {
	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("run %s %s", rt, variant))
	defer span.End()

	report = types.Report{
		Solution:     solution,
		Runtime:      rt,
		Input:        variant,
		ExpectedPath: r.layout.ExpectedPath(solution.PuzzleID, variant),
	}

	defer func() {
		if rec := recover(); rec != nil {
			errMsg := fmt.Sprintf("runtime error: %v", rec)
			r.log.Error("Panic while running solution", "error", errMsg, "report", report.ID())
			report.Verdict = types.VerdictFailure
			report.Error = fmt.Errorf("%s", errMsg)
		}
		span.SetAttributes(attribute.String("verdict", string(report.Verdict)))
		if report.Verdict.Failed() {
			span.SetStatus(codes.Error, string(report.Verdict))
		}
	}()

	r.log.Debug("Running solution", "solution", solution, "runtime", rt, "input", variant)

	outcome := r.executor.Execute(ctx, solution, rt, variant)
	report.Output = outcome.Output
	report.Elapsed = outcome.Elapsed
	if outcome.Failed() {
		report.Verdict = types.VerdictFailure
		report.Error = outcome.Err
		r.log.Debug("Solution failed", "report", report.ID(), "error", outcome.Err)
		return report
	}

	verdict, expected, err := Compare(outcome, report.ExpectedPath)
	report.Verdict = verdict
	report.Expected = expected
	if err != nil {
		report.Error = err
		return report
	}

	if verdict == types.VerdictNoExpected {
		r.decideBaseline(ctx, &report)
	}
	return report
}

func (r *Runner) decideBaseline(ctx context.Context, report *types.Report) {
	accept, err := r.baseline.Accept(ctx, *report)
	if err != nil {
		r.log.Warn("Baseline decision failed, leaving expected output missing", "report", report.ID(), "error", err)
		return
	}
	if !accept {
		return
	}
	if err := WriteBaseline(report.ExpectedPath, report.Output); err != nil {
		report.Verdict = types.VerdictFailure
		report.Error = err
		return
	}
	report.BaselineCreated = true
	r.log.Debug("Created expected output", "path", report.ExpectedPath)
}
