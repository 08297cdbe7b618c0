// Package discovery enumerates the solution files present under a solutions
// directory.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/adventkit/aoc-checker/types"
)

// ErrNoMatch is returned by ParseSolutionPath for paths outside the layout
var ErrNoMatch = errors.New("path does not match the solution layout")

// <language>/<YYYY>/<01..25>/part<1|2>.<ext>
var solutionPathRegex = regexp.MustCompile(`^([^/]+)/(\d{4})/(0[1-9]|1[0-9]|2[0-5])/part([12])\.([A-Za-z0-9]+)$`)

// Matcher recognises solution paths for a fixed set of languages
type Matcher struct {
	languages map[types.Language]string
}

// NewMatcher creates a matcher accepting files of the given languages
func NewMatcher(languages []types.Language) *Matcher {
	m := &Matcher{languages: make(map[types.Language]string, len(languages))}
	for _, lang := range languages {
		m.languages[lang] = lang.Extension()
	}
	return m
}

// ParseSolutionPath parses a slash separated path relative to the solutions
// directory, e.g. "ts-deno/2024/01/part1.ts". Paths that do not follow the
// layout, including unknown languages and extensions that do not belong to
// the language, return ErrNoMatch. A matching path with out of range
// components returns a *types.ValidationError.
func (m *Matcher) ParseSolutionPath(rel string) (types.Solution, error) {
	groups := solutionPathRegex.FindStringSubmatch(rel)
	if groups == nil {
		return types.Solution{}, ErrNoMatch
	}
	langRaw, yearRaw, dayRaw, partRaw, ext := groups[1], groups[2], groups[3], groups[4], groups[5]

	wantExt, ok := m.languages[types.Language(langRaw)]
	if !ok || wantExt != ext {
		return types.Solution{}, ErrNoMatch
	}

	verr := &types.ValidationError{}
	year, err := types.ParseYear(yearRaw)
	verr.Check("year", err)
	day, err := types.ParseDay(dayRaw)
	verr.Check("day", err)
	part, err := types.ParsePart(partRaw)
	verr.Check("part", err)
	if err := verr.OrNil(); err != nil {
		return types.Solution{}, fmt.Errorf("%s: %w", rel, err)
	}

	return types.Solution{
		PuzzleID: types.PuzzleID{Year: year, Day: day, Part: part},
		Language: types.Language(langRaw),
	}, nil
}

// Discover walks solutionsDir and returns every solution file written in one
// of the given languages, sorted by year, day and part. Files outside the
// layout are ignored. A missing solutions directory yields no solutions.
func Discover(solutionsDir string, languages []types.Language) ([]types.Solution, error) {
	matcher := NewMatcher(languages)
	var solutions []types.Solution

	err := filepath.WalkDir(solutionsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == solutionsDir {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(solutionsDir, path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}

		solution, err := matcher.ParseSolutionPath(filepath.ToSlash(rel))
		if errors.Is(err, ErrNoMatch) {
			return nil
		}
		if err != nil {
			return err
		}

		log.Trace("Discovered solution", "solution", solution, "path", path)
		solutions = append(solutions, solution)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering solutions in %s: %w", solutionsDir, err)
	}

	Sort(solutions)
	return solutions, nil
}

// Sort orders solutions by year, day, part and then language. The zero padded
// path components sort the same way lexicographically and numerically.
func Sort(solutions []types.Solution) {
	slices.SortStableFunc(solutions, func(a, b types.Solution) int {
		if a.PuzzleID.Less(b.PuzzleID) {
			return -1
		}
		if b.PuzzleID.Less(a.PuzzleID) {
			return 1
		}
		return strings.Compare(string(a.Language), string(b.Language))
	})
}
