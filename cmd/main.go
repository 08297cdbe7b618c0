package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	checker "github.com/adventkit/aoc-checker"
	"github.com/adventkit/aoc-checker/exitcodes"
	"github.com/adventkit/aoc-checker/flags"
	"github.com/adventkit/aoc-checker/types"
	"github.com/ethereum-optimism/optimism/devnet-sdk/telemetry"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	"github.com/ethereum-optimism/optimism/op-service/ctxinterrupt"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

// now is replaced in tests
var now = time.Now

func main() {
	app := newApp()

	ctx := context.Background()
	// Spans are only exported when an OTLP collector is configured
	if os.Getenv(otlpEndpointEnv) != "" {
		var shutdown func()
		var err error
		ctx, shutdown, err = telemetry.SetupOpenTelemetry(
			ctx,
			otelconfig.WithServiceName(app.Name),
			otelconfig.WithServiceVersion(app.Version),
		)
		if err != nil {
			log.Crit("Failed to setup open telemetry", "message", err)
		}
		defer shutdown()
	}

	// Start CLI
	ctx = ctxinterrupt.WithSignalWaiterMain(ctx)
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Crit("Application failed", "message", err)
	}
}

const otlpEndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "aoc-checker"
	app.Usage = "Advent of Code solution runner"
	app.Description = "aoc-checker runs puzzle solutions in every supported runtime and compares their answers with the expected outputs"
	app.Flags = cliapp.ProtectFlags(flags.Flags)
	app.Commands = []*cli.Command{
		{
			Name:      "check",
			Usage:     "Run one solution against one input and show the comparison",
			ArgsUsage: "<day> <year> <runtime> <part> <input>",
			Action:    checkAction,
		},
		{
			Name:   "check-all",
			Usage:  "Run every solution against the example and actual inputs",
			Action: checkAllAction,
		},
		{
			Name:      "init",
			Usage:     "Scaffold the io directory and solution files of a puzzle day",
			ArgsUsage: "<day> <year>",
			Flags:     cliapp.ProtectFlags(flags.InitFlags),
			Action:    initAction,
		},
		{
			Name:      "watch",
			Usage:     "Re-run a check whenever the solution or its io files change",
			ArgsUsage: "<day> <year> <runtime> <part> <input>",
			Flags:     cliapp.ProtectFlags(flags.WatchFlags),
			Action:    cliapp.LifecycleCmd(watchAction),
		},
	}
	app.ExitErrHandler = exitErrHandler
	return app
}

func exitErrHandler(c *cli.Context, err error) {
	if err == nil {
		return
	}
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		// Use the exit code from the ExitCoder
		cli.HandleExitCoder(exitErr)
		return
	}
	msg, code := exitStatus(err)
	cli.HandleExitCoder(cli.Exit(msg, code))
}

// exitStatus maps an error to the message printed on exit and the exit code
func exitStatus(err error) (string, int) {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		lines := []string{"Invalid arguments:"}
		for _, issue := range verr.Issues {
			lines = append(lines, issue.String())
		}
		return strings.Join(lines, "\n"), exitcodes.Failure
	case checker.IsRuntimeError(err):
		return err.Error(), exitcodes.RuntimeErr
	case checker.IsFailureError(err):
		// The failing runs were already reported
		return "", exitcodes.Failure
	default:
		return err.Error(), exitcodes.Failure
	}
}

func setup(ctx *cli.Context) (*checker.Checker, error) {
	logCfg := oplog.ReadCLIConfig(ctx)
	logger := oplog.NewLogger(logOut(ctx), logCfg)
	oplog.SetGlobalLogHandler(logger.Handler())
	oplog.SetupDefaults()

	cfg, err := checker.NewConfig(ctx, logger)
	if err != nil {
		// Wrap in RuntimeError to signal this should exit with code 2
		return nil, checker.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}
	c, err := checker.New(cfg)
	if err != nil {
		return nil, checker.NewRuntimeError(fmt.Errorf("failed to create checker: %w", err))
	}
	return c, nil
}

// logOut keeps stdout for the report: logs go to the app's error writer
func logOut(ctx *cli.Context) io.Writer {
	if ctx.App != nil && ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}

func checkAction(ctx *cli.Context) error {
	args, err := checker.ParseCheckArgs(ctx.Args().Slice(), now())
	if err != nil {
		return err
	}
	c, err := setup(ctx)
	if err != nil {
		return err
	}
	_, err = c.CheckOne(ctx.Context, args)
	return err
}

func checkAllAction(ctx *cli.Context) error {
	if ctx.Args().Present() {
		return &types.ValidationError{Issues: []types.FieldIssue{{Field: "args", Message: "check-all takes no arguments"}}}
	}
	c, err := setup(ctx)
	if err != nil {
		return err
	}
	_, err = c.CheckAll(ctx.Context)
	return err
}

func initAction(ctx *cli.Context) error {
	args, err := checker.ParseInitArgs(ctx.Args().Slice(), now())
	if err != nil {
		return err
	}
	lang, err := types.ParseLanguage(ctx.String(flags.Language.Name))
	if err != nil {
		return &types.ValidationError{Issues: []types.FieldIssue{{Field: "language", Message: err.Error()}}}
	}
	c, err := setup(ctx)
	if err != nil {
		return err
	}
	return c.Init(ctx.Context, args, lang)
}

func watchAction(ctx *cli.Context, _ context.CancelCauseFunc) (cliapp.Lifecycle, error) {
	args, err := checker.ParseCheckArgs(ctx.Args().Slice(), now())
	if err != nil {
		return nil, err
	}
	c, err := setup(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := checker.NewWatchService(c, args)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
