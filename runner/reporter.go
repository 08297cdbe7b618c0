package runner

import (
	"context"
	"errors"

	"github.com/adventkit/aoc-checker/types"
)

// Reporter receives every report of a batch as soon as it is available.
// Reporting is a side effect: errors are logged and never stop a batch.
type Reporter interface {
	Report(ctx context.Context, report types.Report) error
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(ctx context.Context, report types.Report) error

func (f ReporterFunc) Report(ctx context.Context, report types.Report) error {
	return f(ctx, report)
}

// MultiReporter fans a report out to several reporters
type MultiReporter []Reporter

func (m MultiReporter) Report(ctx context.Context, report types.Report) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Report(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
