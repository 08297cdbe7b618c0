package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"github.com/adventkit/aoc-checker/layout"
	"github.com/adventkit/aoc-checker/runtimes"
	"github.com/adventkit/aoc-checker/types"
)

// The tests run py solutions with a fake "sh" runtime so that no real
// interpreter has to be installed.
const shRuntime types.Runtime = "sh"

// sumOfDifferences pairs the sorted left and right columns and sums the
// absolute differences, printing the answer without a trailing newline.
const sumOfDifferences = `awk '
function isort(x, n,    i, j, v) {
	for (i = 2; i <= n; i++) {
		v = x[i]; j = i - 1
		while (j > 0 && x[j] > v) { x[j + 1] = x[j]; j-- }
		x[j + 1] = v
	}
}
{ a[NR] = $1 + 0; b[NR] = $2 + 0 }
END {
	isort(a, NR); isort(b, NR)
	s = 0
	for (i = 1; i <= NR; i++) { d = a[i] - b[i]; if (d < 0) d = -d; s += d }
	printf "%d", s
}'
`

const sumOfDifferencesInput = "3   4\n4   3\n2   5\n1   3\n3   9\n3   3\n"

var (
	puzzle = types.PuzzleID{Year: 2024, Day: 1, Part: types.Part1}
	pySol  = types.Solution{PuzzleID: puzzle, Language: types.LanguagePython}
)

type workspace struct {
	t        *testing.T
	layout   layout.Layout
	registry *runtimes.Registry
}

func shBuild(binary, solutionPath string) runtimes.ExecutionSpec {
	return runtimes.ExecutionSpec{Command: binary, Args: []string{solutionPath}}
}

func newShRegistry(t *testing.T, binary string) *runtimes.Registry {
	t.Helper()
	reg, err := runtimes.New(
		[]runtimes.Definition{{Runtime: shRuntime, Binary: binary, Home: types.LanguagePython, Build: shBuild}},
		map[types.Language][]types.Runtime{types.LanguagePython: {shRuntime}},
	)
	require.NoError(t, err)
	return reg
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	return &workspace{
		t:        t,
		layout:   layout.Default(t.TempDir()),
		registry: newShRegistry(t, "sh"),
	}
}

func (w *workspace) write(path, content string) {
	w.t.Helper()
	require.NoError(w.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(w.t, os.WriteFile(path, []byte(content), 0o644))
}

func (w *workspace) solution(sol types.Solution, script string) {
	w.write(w.layout.SolutionPath(sol), script)
}

func (w *workspace) input(id types.PuzzleID, variant types.InputVariant, content string) {
	w.write(w.layout.InputPath(id, variant), content)
}

func (w *workspace) expected(id types.PuzzleID, variant types.InputVariant, content string) {
	w.write(w.layout.ExpectedPath(id, variant), content)
}

func (w *workspace) executor(opts ...func(*ExecutorConfig)) Executor {
	w.t.Helper()
	cfg := ExecutorConfig{Layout: w.layout, Registry: w.registry, Log: log.NewLogger(log.DiscardHandler())}
	for _, opt := range opts {
		opt(&cfg)
	}
	e, err := NewExecutor(cfg)
	require.NoError(w.t, err)
	return e
}

func (w *workspace) runner(baseline BaselineDecider, reporter Reporter) *Runner {
	w.t.Helper()
	r, err := NewRunner(Config{
		Layout:   w.layout,
		Registry: w.registry,
		Executor: w.executor(),
		Baseline: baseline,
		Reporter: reporter,
		Log:      log.NewLogger(log.DiscardHandler()),
	})
	require.NoError(w.t, err)
	return r
}
