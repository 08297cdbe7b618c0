package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/adventkit/aoc-checker/types"
)

// BaselineDecider decides whether a run without expected output should have
// its output saved as the new expected output
type BaselineDecider interface {
	Accept(ctx context.Context, report types.Report) (bool, error)
}

// BaselineFunc adapts a function to BaselineDecider
type BaselineFunc func(ctx context.Context, report types.Report) (bool, error)

func (f BaselineFunc) Accept(ctx context.Context, report types.Report) (bool, error) {
	return f(ctx, report)
}

var (
	// AlwaysAccept saves every missing baseline
	AlwaysAccept BaselineDecider = BaselineFunc(func(context.Context, types.Report) (bool, error) { return true, nil })
	// NeverAccept leaves missing baselines missing
	NeverAccept BaselineDecider = BaselineFunc(func(context.Context, types.Report) (bool, error) { return false, nil })
)

const baselinePrompt = "❌ Output file does not exist. Do you want to create it with the current output? (y/n): "

// PromptDecider asks on the terminal. When its input is not a terminal it
// answers no without prompting.
type PromptDecider struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPromptDecider creates a decider reading answers from in and writing the
// question to out
func NewPromptDecider(in *os.File, out io.Writer) *PromptDecider {
	fd := in.Fd()
	return &PromptDecider{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// Interactive reports whether the decider will actually prompt
func (p *PromptDecider) Interactive() bool {
	return p.interactive
}

func (p *PromptDecider) Accept(ctx context.Context, report types.Report) (bool, error) {
	if !p.interactive {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if _, err := fmt.Fprintf(p.out, "🆕 Output:   %s\n%s", report.Output, baselinePrompt); err != nil {
		return false, err
	}
	answer, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}
