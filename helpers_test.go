package checker

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"github.com/adventkit/aoc-checker/flags"
	"github.com/adventkit/aoc-checker/layout"
	"github.com/adventkit/aoc-checker/runtimes"
	"github.com/adventkit/aoc-checker/types"
)

// Solutions are shell scripts executed by sh in place of the python
// interpreter, so the tests need no real runtime installed.
func shRegistry(t *testing.T) *runtimes.Registry {
	t.Helper()
	reg, err := runtimes.New(
		[]runtimes.Definition{{
			Runtime: types.RuntimePython,
			Binary:  "sh",
			Home:    types.LanguagePython,
			Build: func(binary, solutionPath string) runtimes.ExecutionSpec {
				return runtimes.ExecutionSpec{Command: binary, Args: []string{solutionPath}}
			},
		}},
		map[types.Language][]types.Runtime{types.LanguagePython: {types.RuntimePython}},
	)
	require.NoError(t, err)
	return reg
}

var (
	day1Part1 = types.PuzzleID{Year: 2024, Day: 1, Part: types.Part1}
	day1Py    = types.Solution{PuzzleID: day1Part1, Language: types.LanguagePython}
)

type testEnv struct {
	t       *testing.T
	root    string
	layout  layout.Layout
	config  *Config
	checker *Checker
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
}

func newTestEnv(t *testing.T, mode flags.BaselineMode) *testEnv {
	t.Helper()
	root := t.TempDir()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cfg := &Config{
		Root:     root,
		Layout:   layout.Default(root),
		Baseline: mode,
		Stdout:   stdout,
		Stderr:   stderr,
		Log:      log.NewLogger(log.DiscardHandler()),
	}
	c, err := newChecker(cfg, shRegistry(t))
	require.NoError(t, err)
	return &testEnv{
		t:       t,
		root:    root,
		layout:  cfg.Layout,
		config:  cfg,
		checker: c,
		stdout:  stdout,
		stderr:  stderr,
	}
}

func (e *testEnv) write(path, content string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
}

func (e *testEnv) solution(sol types.Solution, script string) {
	e.write(e.layout.SolutionPath(sol), script)
}

func (e *testEnv) input(id types.PuzzleID, variant types.InputVariant, content string) {
	e.write(e.layout.InputPath(id, variant), content)
}

func (e *testEnv) expected(id types.PuzzleID, variant types.InputVariant, content string) {
	e.write(e.layout.ExpectedPath(id, variant), content)
}

// lineCount answers with the number of input lines, without a trailing newline
const lineCount = `awk 'END { printf "%d", NR }'` + "\n"
