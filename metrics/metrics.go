// Package metrics exposes Prometheus counters describing solution runs.
package metrics

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/adventkit/aoc-checker/types"
)

const (
	MetricsNamespace = "aoc"
)

var (
	Debug                bool = true
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "runs_total",
		Help:      "Count of solution runs by verdict",
	}, []string{
		"runtime",
		"input",
		"verdict",
	})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Time spent piping input into a solution and waiting for it",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
	}, []string{
		"runtime",
		"input",
	})

	batchFailures = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "batch_failures",
		Help:      "Number of failed or mismatched runs in the last batch",
	})

	batchRuns = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "batch_runs",
		Help:      "Number of runs in the last batch",
	})

	batchDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "batch_duration_seconds",
		Help:      "Wall clock duration of the last batch",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

// RecordRun counts one report. Failed executions do not observe a duration.
func RecordRun(rt types.Runtime, input types.InputVariant, verdict types.Verdict, elapsed time.Duration) {
	if Debug {
		log.Debug("metric inc",
			"m", "runs_total",
			"runtime", rt,
			"input", input,
			"verdict", verdict)
	}
	runsTotal.WithLabelValues(string(rt), string(input), string(verdict)).Inc()
	if verdict != types.VerdictFailure {
		runDuration.WithLabelValues(string(rt), string(input)).Observe(elapsed.Seconds())
	}
}

// RecordBatch sets the gauges describing a finished batch
func RecordBatch(tally types.Tally, duration time.Duration) {
	batchFailures.Set(float64(tally.Failures()))
	batchRuns.Set(float64(tally.Total))
	batchDuration.Set(duration.Seconds())
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// exposition format, suitable for the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
