package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/adventkit/aoc-checker/layout"
	"github.com/adventkit/aoc-checker/runtimes"
	"github.com/adventkit/aoc-checker/types"
)

var _ Executor = (*executor)(nil)

// CmdBuilder creates the command for an interpreter invocation. The returned
// function releases whatever the builder allocated and is called once the
// process has exited.
type CmdBuilder func(ctx context.Context, name string, arg ...string) (*exec.Cmd, func())

// Executor runs one solution against one input variant
type Executor interface {
	// Execute never returns a Go error: anything that goes wrong is reported
	// through RunOutcome.Err.
	Execute(ctx context.Context, solution types.Solution, rt types.Runtime, variant types.InputVariant) types.RunOutcome
}

// ExecutionError describes a solution process that exited unsuccessfully
type ExecutionError struct {
	Runtime  types.Runtime
	ExitCode int
	Stderr   string
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Runtime, e.ExitCode)
	if e.Stderr != "" {
		msg += "\nstderr: " + e.Stderr
	}
	return msg
}

// ExecutorConfig contains the executor dependencies
type ExecutorConfig struct {
	Layout   layout.Layout
	Registry *runtimes.Registry
	// Timeout bounds each execution. Zero means no timeout.
	Timeout time.Duration
	// WorkDir is the working directory of spawned interpreters
	WorkDir    string
	CmdBuilder CmdBuilder
	Log        log.Logger
}

type executor struct {
	layout     layout.Layout
	registry   *runtimes.Registry
	timeout    time.Duration
	workDir    string
	cmdBuilder CmdBuilder
	log        log.Logger
}

// NewExecutor creates a new solution executor
func NewExecutor(cfg ExecutorConfig) (Executor, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if cfg.Layout.SolutionsDir == "" || cfg.Layout.IODir == "" {
		return nil, fmt.Errorf("layout directories cannot be empty")
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout cannot be negative")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
	}

	e := &executor{
		layout:     cfg.Layout,
		registry:   cfg.Registry,
		timeout:    cfg.Timeout,
		workDir:    cfg.WorkDir,
		cmdBuilder: cfg.CmdBuilder,
		log:        cfg.Log,
	}
	if e.cmdBuilder == nil {
		e.cmdBuilder = e.commandContext
	}
	return e, nil
}

func (e *executor) commandContext(ctx context.Context, name string, arg ...string) (*exec.Cmd, func()) {
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Dir = e.workDir
	cmd.WaitDelay = DefaultWaitDelay
	return cmd, func() {}
}

// Execute spawns the runtime's interpreter for the solution, pipes the input
// variant into it and captures its stdout. The elapsed time covers piping the
// input and waiting for the process, not spawning it.
func (e *executor) Execute(ctx context.Context, solution types.Solution, rt types.Runtime, variant types.InputVariant) types.RunOutcome {
	solutionPath := e.layout.SolutionPath(solution)
	inputPath := e.layout.InputPath(solution.PuzzleID, variant)

	spec, err := e.registry.Spec(rt, solutionPath)
	if err != nil {
		return types.RunOutcome{Err: err}
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return types.RunOutcome{Err: fmt.Errorf("failed to open input: %w", err)}
	}
	defer input.Close()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd, cleanup := e.cmdBuilder(ctx, spec.Command, spec.Args...)
	defer cleanup()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return types.RunOutcome{Err: fmt.Errorf("failed to open stdin pipe: %w", err)}
	}
	var stdout bytes.Buffer
	stderrTail := newTailBuffer(DefaultStderrTailBytes)
	cmd.Stdout = &stdout
	cmd.Stderr = stderrTail

	e.log.Debug("Spawning solution", "solution", solution, "runtime", rt, "input", variant, "command", spec.Command)
	if err := cmd.Start(); err != nil {
		return types.RunOutcome{Err: fmt.Errorf("failed to start %s: %w", spec.Command, err)}
	}

	startTime := time.Now()
	pipeErr := PipeLines(stdin, input)
	closeErr := stdin.Close()
	waitErr := cmd.Wait()
	elapsed := time.Since(startTime)

	outcome := types.RunOutcome{Elapsed: elapsed}

	if waitErr != nil {
		if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			outcome.Err = fmt.Errorf("%s timed out after %v", rt, e.timeout)
			return outcome
		}
		exitErr := &exec.ExitError{}
		if errors.As(waitErr, &exitErr) {
			outcome.Err = &ExecutionError{
				Runtime:  rt,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderrTail.String()),
			}
			return outcome
		}
		outcome.Err = fmt.Errorf("failed to run %s: %w", spec.Command, waitErr)
		return outcome
	}

	// A solution may exit before consuming all of its input.
	if pipeErr != nil && !isClosedPipe(pipeErr) {
		outcome.Err = fmt.Errorf("failed to pipe input: %w", pipeErr)
		return outcome
	}
	if closeErr != nil && !isClosedPipe(closeErr) {
		outcome.Err = fmt.Errorf("failed to close stdin: %w", closeErr)
		return outcome
	}

	outcome.Output = strings.ToValidUTF8(stdout.String(), "\uFFFD")
	if stderrTail.TotalBytes() > 0 {
		e.log.Debug("Solution wrote to stderr", "solution", solution, "runtime", rt,
			"bytes", stderrTail.TotalBytes(), "truncated", stderrTail.Truncated())
	}
	return outcome
}

func isClosedPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed)
}
