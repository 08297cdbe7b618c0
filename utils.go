package checker

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/adventkit/aoc-checker/types"
)

// getVerdictString returns a short marker for the verdict
func getVerdictString(v types.Verdict) string {
	switch v {
	case types.VerdictMatch:
		return "✓ match"
	case types.VerdictNoExpected:
		return "- new"
	case types.VerdictMismatch:
		return "✗ mismatch"
	default:
		return "✗ failure"
	}
}

// Helper function to format duration to milliseconds
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Round(time.Millisecond).Milliseconds())
}

// extractKeyErrorMessage returns the first meaningful line of a run error,
// which is what fits into a table cell
func extractKeyErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return text.Snip(line, maxErrorCellWidth, "...")
	}
	return ""
}

const maxErrorCellWidth = 80
