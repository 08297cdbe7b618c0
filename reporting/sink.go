package reporting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/acarl005/stripansi"

	"github.com/adventkit/aoc-checker/types"
)

const (
	// RunDirPrefix prefixes the per-run directory below the report directory
	RunDirPrefix = "run-"
	// SummaryFileName is the file written by SummarySink.Complete
	SummaryFileName = "summary.log"
)

// SummarySink collects the reports of a batch and writes a plain text summary
// to <baseDir>/run-<id>/summary.log once the batch completes
type SummarySink struct {
	baseDir string

	mu      sync.Mutex
	reports []types.Report
}

// NewSummarySink creates a sink writing below baseDir
func NewSummarySink(baseDir string) *SummarySink {
	return &SummarySink{baseDir: baseDir}
}

// Report collects a report for the summary
func (s *SummarySink) Report(_ context.Context, report types.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return nil
}

// Complete writes the summary file for runID and returns its path. The table
// is rendered above the transcript. ANSI escape sequences are removed.
func (s *SummarySink) Complete(runID string, table string, tally types.Tally) (string, error) {
	s.mu.Lock()
	reports := s.reports
	s.reports = nil
	s.mu.Unlock()

	outputDir := filepath.Join(s.baseDir, RunDirPrefix+runID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n\n", runID)
	if table != "" {
		b.WriteString(strings.TrimRight(table, "\n"))
		b.WriteString("\n\n")
	}
	for _, line := range Transcript(reports, tally) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, r := range reports {
		if r.Error == nil {
			continue
		}
		fmt.Fprintf(&b, "\n%s: %v\n", r.ID(), r.Error)
	}

	summaryFile := filepath.Join(outputDir, SummaryFileName)
	if err := os.WriteFile(summaryFile, []byte(stripansi.Strip(b.String())), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary file: %w", err)
	}
	return summaryFile, nil
}
