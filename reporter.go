package checker

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ethereum/go-ethereum/log"

	"github.com/adventkit/aoc-checker/reporting"
	"github.com/adventkit/aoc-checker/runner"
	"github.com/adventkit/aoc-checker/types"
)

var _ runner.Reporter = (*ConsoleReporter)(nil)

// ReportMode selects how much the console shows per run
type ReportMode int

const (
	// BatchMode prints a header per puzzle and one line per run
	BatchMode ReportMode = iota
	// DetailMode prints the output, the expected output and the time of a
	// single run
	DetailMode
)

// ConsoleReporter prints the emoji line log. Failures go to errOut, everything
// else to out.
type ConsoleReporter struct {
	out    io.Writer
	errOut io.Writer
	mode   ReportMode
	log    log.Logger

	// showOutput is false when an interactive prompt already printed the
	// output of runs without an expected output
	showOutput bool

	mu   sync.Mutex
	last *types.PuzzleID
}

// NewConsoleReporter creates a console reporter
func NewConsoleReporter(out, errOut io.Writer, mode ReportMode, showOutput bool, logger log.Logger) *ConsoleReporter {
	return &ConsoleReporter{
		out:        out,
		errOut:     errOut,
		mode:       mode,
		showOutput: showOutput,
		log:        logger,
	}
}

// Report prints the lines of one run
func (c *ConsoleReporter) Report(_ context.Context, r types.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.announceLocked(r.Solution.PuzzleID); err != nil {
		return err
	}

	if r.Verdict == types.VerdictFailure {
		c.log.Error("Solution failed", "solution", r.Solution, "runtime", r.Runtime, "input", r.Input, "error", r.Error)
		_, err := fmt.Fprintln(c.errOut, reporting.FailureLine)
		return err
	}
	if r.Error != nil {
		c.log.Warn("Run completed with an error", "report", r.ID(), "error", r.Error)
	}

	var lines []string
	if c.mode == DetailMode {
		lines = reporting.DetailLines(r, c.showOutput)
	} else {
		lines = reporting.BatchLines(r, c.showOutput)
	}
	return c.writeLines(lines)
}

// Announce prints the puzzle header if id differs from the last printed one.
// It is called before a prompt so the question appears below its puzzle.
func (c *ConsoleReporter) Announce(id types.PuzzleID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.announceLocked(id)
}

func (c *ConsoleReporter) announceLocked(id types.PuzzleID) error {
	if c.mode != BatchMode {
		return nil
	}
	if c.last != nil && *c.last == id {
		return nil
	}
	c.last = &id
	_, err := fmt.Fprintln(c.out, reporting.Header(id))
	return err
}

// Summary prints the final line of a batch
func (c *ConsoleReporter) Summary(tally types.Tally) error {
	_, err := fmt.Fprintln(c.out, tally.Summary())
	return err
}

func (c *ConsoleReporter) writeLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(c.out, line); err != nil {
			return err
		}
	}
	return nil
}
