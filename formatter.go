package checker

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/adventkit/aoc-checker/runner"
	"github.com/adventkit/aoc-checker/types"
)

// ResultFormatter is responsible for formatting batch results
type ResultFormatter interface {
	FormatResults(result *runner.BatchResult) error
}

// ConsoleResultFormatter renders a batch as a table
type ConsoleResultFormatter struct {
	out    io.Writer
	logger log.Logger
}

// NewConsoleResultFormatter creates a new ConsoleResultFormatter
func NewConsoleResultFormatter(out io.Writer, logger log.Logger) *ConsoleResultFormatter {
	return &ConsoleResultFormatter{out: out, logger: logger}
}

// FormatResults writes the results table to the formatter's output
func (f *ConsoleResultFormatter) FormatResults(result *runner.BatchResult) error {
	f.logger.Debug("Printing results table", "run_id", result.RunID)
	_, err := io.WriteString(f.out, RenderTable(result, true)+"\n")
	return err
}

// RenderTable renders one row per run plus a TOTAL footer. With colored set
// the style reflects whether the batch passed.
func RenderTable(result *runner.BatchResult, colored bool) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Solution Results (%s)", formatDuration(result.Duration)))

	t.AppendHeader(table.Row{"Puzzle", "Language", "Runtime", "Input", "Time", "Verdict", "Error"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Puzzle", AutoMerge: true},
		{Name: "Language", AutoMerge: true},
		{Name: "Time", Align: text.AlignRight},
		{Name: "Error", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})

	var last *types.Solution
	for _, r := range result.Reports {
		if last != nil && *last != r.Solution {
			t.AppendSeparator()
		}
		sol := r.Solution
		last = &sol

		t.AppendRow(table.Row{
			r.Solution.PuzzleID.String(),
			r.Solution.Language.String(),
			r.Runtime.String(),
			r.Input.String(),
			formatDuration(r.Elapsed),
			getVerdictString(r.Verdict),
			extractKeyErrorMessage(r.Error),
		})
	}

	if colored {
		switch {
		case result.Tally.Failures() > 0:
			t.SetStyle(table.StyleColoredBlackOnRedWhite)
		case result.Tally.NoExpected > 0:
			t.SetStyle(table.StyleColoredBlackOnYellowWhite)
		default:
			t.SetStyle(table.StyleColoredBlackOnGreenWhite)
		}
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		"",
		"",
		fmt.Sprintf("%d runs", result.Tally.Total),
		formatDuration(result.Duration),
		fmt.Sprintf("%d failed", result.Tally.Failures()),
		"",
	})

	return t.Render()
}
