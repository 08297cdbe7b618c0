package types

import (
	"fmt"
	"time"

	"github.com/adventkit/aoc-checker/exitcodes"
)

// Verdict is the terminal state of one solution variant run against one input
type Verdict string

const (
	VerdictFailure    Verdict = "failure"
	VerdictNoExpected Verdict = "no-expected"
	VerdictMatch      Verdict = "match"
	VerdictMismatch   Verdict = "mismatch"
)

func (v Verdict) String() string {
	return string(v)
}

// Failed reports whether the verdict counts towards the failure tally
func (v Verdict) Failed() bool {
	return v == VerdictFailure || v == VerdictMismatch
}

// RunOutcome is what a single execution produced. A non-nil Err means the run
// failed and Output must not be trusted.
type RunOutcome struct {
	Output  string
	Elapsed time.Duration
	Err     error
}

// Failed reports whether the execution itself failed
func (o RunOutcome) Failed() bool {
	return o.Err != nil
}

// Report is emitted once per solution variant and input variant
type Report struct {
	Solution     Solution
	Runtime      Runtime
	Input        InputVariant
	Verdict      Verdict
	Output       string
	Expected     string
	Elapsed      time.Duration
	ExpectedPath string

	// BaselineCreated is set when a missing expected file was written from Output
	BaselineCreated bool
	Error           error
}

// ID returns a stable key for the report, useful for logs and metrics
func (r Report) ID() string {
	return fmt.Sprintf("%s/%s/%s", r.Solution, r.Runtime, r.Input)
}

// Tally accumulates failures over a batch. It is owned by the orchestrating
// goroutine and is not safe for concurrent use.
type Tally struct {
	Total      int
	Matched    int
	Mismatched int
	Failed     int
	NoExpected int
}

// Record counts the verdict
func (t *Tally) Record(v Verdict) {
	t.Total++
	switch v {
	case VerdictMatch:
		t.Matched++
	case VerdictMismatch:
		t.Mismatched++
	case VerdictFailure:
		t.Failed++
	case VerdictNoExpected:
		t.NoExpected++
	}
}

// Failures is the number of runs that failed or mismatched
func (t Tally) Failures() int {
	return t.Failed + t.Mismatched
}

// ExitCode is 0 if and only if no run failed
func (t Tally) ExitCode() int {
	if t.Failures() > 0 {
		return exitcodes.Failure
	}
	return exitcodes.Success
}

// Summary returns the final human readable line of a batch
func (t Tally) Summary() string {
	failures := t.Failures()
	if failures == 0 {
		return "🎉 All solutions passed"
	}
	noun := "solutions"
	if failures == 1 {
		noun = "solution"
	}
	return fmt.Sprintf("❌ %d %s failed", failures, noun)
}
