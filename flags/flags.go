package flags

import (
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"

	"github.com/adventkit/aoc-checker/types"
)

const EnvVarPrefix = "AOC_CHECKER"

// BaselineMode selects how missing expected outputs are handled
type BaselineMode string

const (
	BaselinePrompt BaselineMode = "prompt"
	BaselineAccept BaselineMode = "accept"
	BaselineReject BaselineMode = "reject"
)

func (m BaselineMode) String() string {
	return string(m)
}

// IsValid checks if the baseline mode is supported
func (m BaselineMode) IsValid() bool {
	return slices.Contains(ValidBaselineModes(), m)
}

// ValidBaselineModes returns all supported baseline modes
func ValidBaselineModes() []BaselineMode {
	return []BaselineMode{BaselinePrompt, BaselineAccept, BaselineReject}
}

func validateBaselineMode(value string) error {
	if !BaselineMode(value).IsValid() {
		valid := make([]string, 0, len(ValidBaselineModes()))
		for _, m := range ValidBaselineModes() {
			valid = append(valid, m.String())
		}
		return fmt.Errorf("baseline must be one of: %s", strings.Join(valid, ", "))
	}
	return nil
}

var (
	Root = &cli.StringFlag{
		Name:    "root",
		Value:   ".",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "ROOT"),
		Usage:   "Repository root containing the solutions and io directories",
	}
	SolutionsDir = &cli.StringFlag{
		Name:    "solutions-dir",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "SOLUTIONS_DIR"),
		Usage:   "Solutions directory. Defaults to <root>/solutions",
	}
	IODir = &cli.StringFlag{
		Name:    "io-dir",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "IO_DIR"),
		Usage:   "Input and expected output directory. Defaults to <root>/io",
	}
	RuntimesConfig = &cli.StringFlag{
		Name:    "runtimes-config",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "RUNTIMES_CONFIG"),
		Usage:   "Optional YAML file overriding interpreter binaries and the runtimes used per language",
	}
	Baseline = &cli.StringFlag{
		Name:    "baseline",
		Value:   BaselinePrompt.String(),
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "BASELINE"),
		Usage:   "What to do when a solution has no expected output: 'prompt' asks on a terminal, 'accept' saves the output, 'reject' leaves it missing",
		Action: func(_ *cli.Context, value string) error {
			return validateBaselineMode(value)
		},
	}
	Timeout = &cli.DurationFlag{
		Name:    "timeout",
		Value:   0,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "TIMEOUT"),
		Usage:   "Kill a solution that runs longer than this (e.g. '10s'). 0 disables the timeout.",
	}
	ReportDir = &cli.StringFlag{
		Name:    "report-dir",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "REPORT_DIR"),
		Usage:   "Directory where a summary of every check-all run is written. Disabled when empty.",
	}
	MetricsFile = &cli.StringFlag{
		Name:    "metrics-file",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "METRICS_FILE"),
		Usage:   "Write Prometheus metrics in text format to this file after a run. Disabled when empty.",
	}
	SummaryTable = &cli.BoolFlag{
		Name:    "summary-table",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "SUMMARY_TABLE"),
		Usage:   "Print a results table after check-all",
	}
	EnvFile = &cli.StringFlag{
		Name:    "env-file",
		Value:   ".env",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "ENV_FILE"),
		Usage:   "Dotenv file read for AOC_SESSION_KEY, relative to the root",
	}
)

// Language is the init command's solution language
var Language = &cli.StringFlag{
	Name:    "language",
	Value:   types.LanguageDeno.String(),
	EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "LANGUAGE"),
	Usage:   "Language folder of the scaffolded solution files",
}

var (
	HealthzAddr = &cli.StringFlag{
		Name:    "healthz-addr",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "HEALTHZ_ADDR"),
		Usage:   "Serve /healthz on this address while watching (e.g. '0.0.0.0:8080'). Disabled when empty.",
	}
	MetricsAddr = &cli.StringFlag{
		Name:    "metrics-addr",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "METRICS_ADDR"),
		Usage:   "Serve Prometheus /metrics on this address while watching (e.g. '0.0.0.0:7300'). Disabled when empty.",
	}
)

var optionalFlags = []cli.Flag{
	Root,
	SolutionsDir,
	IODir,
	RuntimesConfig,
	Baseline,
	Timeout,
	ReportDir,
	MetricsFile,
	SummaryTable,
	EnvFile,
}

// Flags are the global flags shared by every command
var Flags []cli.Flag

// InitFlags are the flags of the init command
var InitFlags = []cli.Flag{Language}

// WatchFlags are the flags of the watch command
var WatchFlags = []cli.Flag{HealthzAddr, MetricsAddr}

func init() {
	optionalFlags = append(optionalFlags, oplog.CLIFlags(EnvVarPrefix)...)

	Flags = optionalFlags
}
