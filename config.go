package checker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/adventkit/aoc-checker/flags"
	"github.com/adventkit/aoc-checker/layout"
)

// Config holds the application configuration
type Config struct {
	Root           string
	Layout         layout.Layout
	RuntimesConfig string             // Optional YAML runtime overrides
	Baseline       flags.BaselineMode // What to do about missing expected outputs
	Timeout        time.Duration      // Per-run timeout, 0 means none
	ReportDir      string             // Directory for run summaries, empty disables them
	MetricsFile    string             // Prometheus text file, empty disables it
	SummaryTable   bool
	EnvFile        string // Dotenv file holding AOC_SESSION_KEY
	HealthzAddr    string // Watch mode only, empty disables it
	MetricsAddr    string // Watch mode only, empty disables it

	Stdin  *os.File
	Stdout io.Writer
	Stderr io.Writer
	Log    log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	root, err := filepath.Abs(ctx.String(flags.Root.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for root '%s': %w", ctx.String(flags.Root.Name), err)
	}

	l := layout.Default(root)
	if dir := ctx.String(flags.SolutionsDir.Name); dir != "" {
		l.SolutionsDir = resolve(root, dir)
	}
	if dir := ctx.String(flags.IODir.Name); dir != "" {
		l.IODir = resolve(root, dir)
	}

	baseline := flags.BaselineMode(ctx.String(flags.Baseline.Name))
	if !baseline.IsValid() {
		return nil, fmt.Errorf("invalid baseline mode: %s", baseline)
	}

	timeout := ctx.Duration(flags.Timeout.Name)
	if timeout < 0 {
		return nil, fmt.Errorf("timeout cannot be negative: %v", timeout)
	}

	var runtimesConfig, reportDir, metricsFile string
	if p := ctx.String(flags.RuntimesConfig.Name); p != "" {
		runtimesConfig = resolve(root, p)
	}
	if p := ctx.String(flags.ReportDir.Name); p != "" {
		reportDir = resolve(root, p)
	}
	if p := ctx.String(flags.MetricsFile.Name); p != "" {
		metricsFile = resolve(root, p)
	}
	var envFile string
	if p := ctx.String(flags.EnvFile.Name); p != "" {
		envFile = resolve(root, p)
	}

	return &Config{
		Root:           root,
		Layout:         l,
		RuntimesConfig: runtimesConfig,
		Baseline:       baseline,
		Timeout:        timeout,
		ReportDir:      reportDir,
		MetricsFile:    metricsFile,
		SummaryTable:   ctx.Bool(flags.SummaryTable.Name),
		EnvFile:        envFile,
		HealthzAddr:    ctx.String(flags.HealthzAddr.Name),
		MetricsAddr:    ctx.String(flags.MetricsAddr.Name),
		Stdin:          os.Stdin,
		Stdout:         ctx.App.Writer,
		Stderr:         ctx.App.ErrWriter,
		Log:            log,
	}, nil
}

// resolve makes p absolute, treating relative paths as relative to root
func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
