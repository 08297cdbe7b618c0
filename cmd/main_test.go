package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	checker "github.com/adventkit/aoc-checker"
	"github.com/adventkit/aoc-checker/exitcodes"
	"github.com/adventkit/aoc-checker/types"
)

// fakePython stands in for the python interpreter: it is invoked as
// "<binary> -c <shim> <solution>" and runs the solution as a shell script.
const fakePython = "#!/bin/sh\nexec sh \"$3\"\n"

const lineCount = `awk 'END { printf "%d", NR }'` + "\n"

type result struct {
	code   int
	stdout string
	stderr string
}

// runApp runs the CLI in-process and captures the exit code
func runApp(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr, exitOut bytes.Buffer

	code := exitcodes.Success
	origExiter, origErrWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(c int) { code = c }
	cli.ErrWriter = &exitOut
	t.Cleanup(func() {
		cli.OsExiter = origExiter
		cli.ErrWriter = origErrWriter
	})

	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	_ = app.RunContext(context.Background(), append([]string{"aoc-checker"}, args...))

	return result{code: code, stdout: stdout.String(), stderr: stderr.String() + exitOut.String()}
}

// project creates a checker root whose python runtime is the fake interpreter
func project(t *testing.T) (string, []string) {
	t.Helper()
	root := t.TempDir()
	interpreter := filepath.Join(root, "fake-python")
	require.NoError(t, os.WriteFile(interpreter, []byte(fakePython), 0o755))
	write(t, filepath.Join(root, "runtimes.yaml"), fmt.Sprintf("binaries:\n  py: %s\n", interpreter))

	globals := []string{
		"--root", root,
		"--runtimes-config", "runtimes.yaml",
		"--baseline", "reject",
		"--log.level", "error",
	}
	return root, globals
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCheckAllCommand(t *testing.T) {
	root, globals := project(t)
	write(t, filepath.Join(root, "solutions", "py", "2024", "01", "part1.py"), lineCount)
	write(t, filepath.Join(root, "io", "2024", "01", "example.part1.input"), "1 2\n3 4\n")
	write(t, filepath.Join(root, "io", "2024", "01", "example.part1.output"), "2")
	write(t, filepath.Join(root, "io", "2024", "01", "actual.input"), "1 2\n")
	write(t, filepath.Join(root, "io", "2024", "01", "actual.part1.output"), "1")

	res := runApp(t, append(globals, "check-all")...)
	assert.Equal(t, exitcodes.Success, res.code, res.stderr)
	assert.Contains(t, res.stdout, "📋 2024 01 part1\n")
	assert.Contains(t, res.stdout, "✅ py example 🕐")
	assert.Contains(t, res.stdout, "✅ py actual  🕐")
	assert.Contains(t, res.stdout, "🎉 All solutions passed")

	// A wrong answer makes the sweep exit 1
	write(t, filepath.Join(root, "io", "2024", "01", "actual.part1.output"), "7")
	res = runApp(t, append(globals, "check-all")...)
	assert.Equal(t, exitcodes.Failure, res.code)
	assert.Contains(t, res.stdout, "❌ py actual  🕐")
	assert.Contains(t, res.stdout, "❌ 1 solution failed")
}

func TestCheckCommand(t *testing.T) {
	root, globals := project(t)
	write(t, filepath.Join(root, "solutions", "py", "2023", "05", "part2.py"), lineCount)
	write(t, filepath.Join(root, "io", "2023", "05", "example.part2.input"), "x\ny\nz\n")
	write(t, filepath.Join(root, "io", "2023", "05", "example.part2.output"), "3")

	res := runApp(t, append(globals, "check", "5", "2023", "py", "2", "example")...)
	assert.Equal(t, exitcodes.Success, res.code, res.stderr)
	assert.Regexp(t, `^✅ Output:   3\n📋 Expected: 3\n🕐 Took:     \d+ms\n$`, res.stdout)
}

func TestCheckCommandFailure(t *testing.T) {
	root, globals := project(t)
	write(t, filepath.Join(root, "solutions", "py", "2023", "05", "part1.py"), "exit 4\n")
	write(t, filepath.Join(root, "io", "2023", "05", "actual.input"), "x\n")

	res := runApp(t, append(globals, "check", "05", "2023", "py", "1", "actual")...)
	assert.Equal(t, exitcodes.Failure, res.code)
	assert.Contains(t, res.stderr, "❌ FAILURE")
	assert.Empty(t, res.stdout)
}

func TestCheckCommandInvalidArguments(t *testing.T) {
	_, globals := project(t)

	res := runApp(t, append(globals, "check", "32", "2023", "ts-ruby", "3", "actual")...)
	assert.Equal(t, exitcodes.Failure, res.code)
	assert.Contains(t, res.stderr, "Invalid arguments:\n")
	assert.Contains(t, res.stderr, "day: must be between 1 and 25")
	assert.Contains(t, res.stderr, "runtime: invalid runtime \"ts-ruby\"")
	assert.Contains(t, res.stderr, "part: invalid part \"3\"")
}

func TestCheckAllRuntimeError(t *testing.T) {
	root, globals := project(t)
	write(t, filepath.Join(root, "runtimes.yaml"), "binaries:\n  cobol: cobc\n")

	res := runApp(t, append(globals, "check-all")...)
	assert.Equal(t, exitcodes.RuntimeErr, res.code)
	assert.Contains(t, res.stderr, "failed to create checker")
}

func TestCheckAllRejectsArguments(t *testing.T) {
	_, globals := project(t)
	res := runApp(t, append(globals, "check-all", "extra")...)
	assert.Equal(t, exitcodes.Failure, res.code)
	assert.Contains(t, res.stderr, "args: check-all takes no arguments")
}

func TestInitCommandInvalidLanguage(t *testing.T) {
	_, globals := project(t)
	res := runApp(t, append(globals, "init", "--language", "rust", "1", "2024")...)
	assert.Equal(t, exitcodes.Failure, res.code)
	assert.Contains(t, res.stderr, "Invalid arguments:\n")
	assert.Contains(t, res.stderr, "language: invalid language \"rust\"")
}

func TestExitStatus(t *testing.T) {
	verr := &types.ValidationError{}
	verr.Add("day", "must be between 1 and 25")
	verr.Add("part", "invalid part \"3\", expected one of: 1, 2")

	tests := []struct {
		name string
		err  error
		msg  string
		code int
	}{
		{
			name: "validation",
			err:  fmt.Errorf("failed to setup: %w", verr),
			msg:  "Invalid arguments:\nday: must be between 1 and 25\npart: invalid part \"3\", expected one of: 1, 2",
			code: exitcodes.Failure,
		},
		{
			name: "runtime",
			err:  checker.NewRuntimeError(errors.New("discovery failed")),
			msg:  "runtime error: discovery failed",
			code: exitcodes.RuntimeErr,
		},
		{
			name: "failure",
			err:  checker.NewFailureError("❌ 1 solution failed"),
			msg:  "",
			code: exitcodes.Failure,
		},
		{
			name: "other",
			err:  errors.New("flag provided but not defined"),
			msg:  "flag provided but not defined",
			code: exitcodes.Failure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, code := exitStatus(tt.err)
			assert.Equal(t, tt.msg, msg)
			assert.Equal(t, tt.code, code)
		})
	}
}
