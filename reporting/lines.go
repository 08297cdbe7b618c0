// Package reporting renders run reports as the emoji line log and persists
// batch summaries.
package reporting

import (
	"fmt"
	"math"
	"time"

	"github.com/adventkit/aoc-checker/types"
)

// FailureLine is printed for every run whose execution failed
const FailureLine = "❌ FAILURE"

// inputColumnWidth pads "actual" so that timings line up with "example"
const inputColumnWidth = 7

// Millis rounds a duration to whole milliseconds
func Millis(d time.Duration) int64 {
	return int64(math.Round(float64(d) / float64(time.Millisecond)))
}

// Header introduces the runs of one puzzle, e.g. "📋 2024 01 part1"
func Header(id types.PuzzleID) string {
	return "📋 " + id.String()
}

// ResultLine is the one line summary of a compared run, e.g.
// "✅ ts-deno example 🕐 23ms"
func ResultLine(r types.Report) string {
	mark := "✅"
	if r.Verdict != types.VerdictMatch {
		mark = "❌"
	}
	return fmt.Sprintf("%s %s %-*s 🕐 %dms", mark, r.Runtime, inputColumnWidth, r.Input, Millis(r.Elapsed))
}

// NewOutputLine shows the output of a run that has no expected output yet
func NewOutputLine(output string) string {
	return "🆕 Output:   " + output
}

// CreatedLine confirms a baseline was written
func CreatedLine(path string) string {
	return "✅ Created " + path
}

// TookLine reports the elapsed time of a single run
func TookLine(elapsed time.Duration) string {
	return fmt.Sprintf("🕐 Took:     %dms", Millis(elapsed))
}

// BatchLines renders one report the way a full sweep prints it. The
// no-expected output line is left out when showOutput is false, which is the
// case when a prompt already displayed it.
func BatchLines(r types.Report, showOutput bool) []string {
	switch r.Verdict {
	case types.VerdictFailure:
		return []string{FailureLine}
	case types.VerdictNoExpected:
		var lines []string
		if showOutput {
			lines = append(lines, NewOutputLine(r.Output))
		}
		if r.BaselineCreated {
			lines = append(lines, CreatedLine(r.ExpectedPath))
		}
		return append(lines, TookLine(r.Elapsed))
	default:
		return []string{ResultLine(r)}
	}
}

// DetailLines renders one report the way a single check prints it
func DetailLines(r types.Report, showOutput bool) []string {
	switch r.Verdict {
	case types.VerdictFailure:
		return []string{FailureLine}
	case types.VerdictNoExpected:
		var lines []string
		if showOutput {
			lines = append(lines, NewOutputLine(r.Output))
		}
		if r.BaselineCreated {
			lines = append(lines, CreatedLine(r.ExpectedPath))
		}
		return lines
	case types.VerdictMatch:
		return []string{
			"✅ Output:   " + r.Output,
			"📋 Expected: " + r.Expected,
			TookLine(r.Elapsed),
		}
	default:
		return []string{
			"❌ Output: " + r.Output,
			"📋 Expected: " + r.Expected,
			TookLine(r.Elapsed),
		}
	}
}

// Transcript renders a whole batch, inserting a header whenever the puzzle
// changes and ending with the summary line
func Transcript(reports []types.Report, tally types.Tally) []string {
	var lines []string
	var last *types.PuzzleID
	for _, r := range reports {
		if last == nil || *last != r.Solution.PuzzleID {
			id := r.Solution.PuzzleID
			last = &id
			lines = append(lines, Header(id))
		}
		lines = append(lines, BatchLines(r, true)...)
	}
	return append(lines, tally.Summary())
}
