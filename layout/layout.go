// Package layout maps puzzle identifiers to file paths. Every function is a
// pure function of its arguments: no lookups, no filesystem access.
package layout

import (
	"fmt"
	"path/filepath"

	"github.com/adventkit/aoc-checker/types"
)

const (
	DefaultSolutionsDir = "solutions"
	DefaultIODir        = "io"
)

// File kinds under a puzzle's io directory
const (
	KindInput  = "input"
	KindOutput = "output"
)

// Layout holds the two roots every path is derived from
type Layout struct {
	SolutionsDir string
	IODir        string
}

// Default returns the layout relative to root using the conventional folder names
func Default(root string) Layout {
	return Layout{
		SolutionsDir: filepath.Join(root, DefaultSolutionsDir),
		IODir:        filepath.Join(root, DefaultIODir),
	}
}

// SolutionFileName returns "part<N>.<ext>"
func SolutionFileName(part types.Part, lang types.Language) string {
	return fmt.Sprintf("part%s.%s", part, lang.Extension())
}

// SolutionPath returns <solutions>/<language>/<YYYY>/<DD>/part<N>.<ext>
func (l Layout) SolutionPath(sol types.Solution) string {
	return filepath.Join(
		l.SolutionsDir,
		sol.Language.String(),
		sol.Year.String(),
		sol.Day.String(),
		SolutionFileName(sol.Part, sol.Language),
	)
}

// DayDir returns <io>/<YYYY>/<DD>
func (l Layout) DayDir(year types.Year, day types.Day) string {
	return filepath.Join(l.IODir, year.String(), day.String())
}

// IOFileName returns the name of an input or output file. The actual input is
// shared by both parts of a puzzle and therefore carries no part suffix; every
// other combination does.
func IOFileName(kind string, part types.Part, variant types.InputVariant) string {
	if kind == KindInput && variant == types.InputActual {
		return fmt.Sprintf("%s.%s", variant, kind)
	}
	return fmt.Sprintf("%s.part%s.%s", variant, part, kind)
}

// InputPath returns the file piped into a solution's stdin
func (l Layout) InputPath(id types.PuzzleID, variant types.InputVariant) string {
	return filepath.Join(l.DayDir(id.Year, id.Day), IOFileName(KindInput, id.Part, variant))
}

// ExpectedPath returns the baseline file a solution's output is compared with
func (l Layout) ExpectedPath(id types.PuzzleID, variant types.InputVariant) string {
	return filepath.Join(l.DayDir(id.Year, id.Day), IOFileName(KindOutput, id.Part, variant))
}

// DescriptionPath returns description.part<N>.md inside the puzzle's io directory
func (l Layout) DescriptionPath(year types.Year, day types.Day, part types.Part) string {
	return filepath.Join(l.DayDir(year, day), fmt.Sprintf("description.part%s.md", part))
}
