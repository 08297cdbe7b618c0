package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventkit/aoc-checker/types"
)

func TestErrToLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "nil error",
			err:  nil,
		},
		{
			name: "simple error",
			err:  errors.New("test error"),
		},
		{
			name: "error with special chars",
			err:  errors.New("exit@code#2"),
		},
		{
			name: "error with multiple spaces",
			err:  errors.New("deno   crashed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := errToLabel(tt.err)
			validLabelRegex := regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
			assert.Regexp(t, validLabelRegex, result)
		})
	}
}

func TestRecordErrorDetails(t *testing.T) {
	before := testutil.ToFloat64(errorsTotal.WithLabelValues("discovery.bad_year"))
	RecordErrorDetails("discovery", nil)
	RecordErrorDetails("discovery", errors.New("bad year"))
	assert.Equal(t, before+1, testutil.ToFloat64(errorsTotal.WithLabelValues("discovery.bad_year")))
}

func TestRecordRun(t *testing.T) {
	counter := runsTotal.WithLabelValues("ts-deno", "example", "match")
	failures := runsTotal.WithLabelValues("ts-deno", "example", "failure")
	before := testutil.ToFloat64(counter)
	beforeFailures := testutil.ToFloat64(failures)

	RecordRun(types.RuntimeDeno, types.InputExample, types.VerdictMatch, 20*time.Millisecond)
	RecordRun(types.RuntimeDeno, types.InputExample, types.VerdictMatch, 30*time.Millisecond)
	RecordRun(types.RuntimeDeno, types.InputExample, types.VerdictFailure, 0)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
	assert.Equal(t, beforeFailures+1, testutil.ToFloat64(failures))
}

func TestRecordBatch(t *testing.T) {
	tally := types.Tally{}
	tally.Record(types.VerdictMatch)
	tally.Record(types.VerdictMismatch)
	tally.Record(types.VerdictFailure)
	tally.Record(types.VerdictNoExpected)

	RecordBatch(tally, 2*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(batchFailures))
	assert.Equal(t, 4.0, testutil.ToFloat64(batchRuns))
	assert.Equal(t, 2.0, testutil.ToFloat64(batchDuration))
}

func TestWriteTextfile(t *testing.T) {
	RecordRun(types.RuntimePython, types.InputActual, types.VerdictMismatch, time.Millisecond)

	path := filepath.Join(t.TempDir(), "aoc.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `aoc_runs_total{input="actual",runtime="py",verdict="mismatch"}`)
	assert.Contains(t, string(data), "aoc_run_duration_seconds_bucket")

	assert.Error(t, WriteTextfile(filepath.Join(t.TempDir(), "missing", "aoc.prom")))
}
