package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adventkit/aoc-checker/types"
)

// Compare checks a run outcome against the expected output stored at
// expectedPath. The comparison is exact: no trimming and no newline
// normalisation. A missing expected file yields VerdictNoExpected; any other
// read error is returned along with VerdictFailure.
func Compare(outcome types.RunOutcome, expectedPath string) (types.Verdict, string, error) {
	if outcome.Failed() {
		return types.VerdictFailure, "", nil
	}

	data, err := os.ReadFile(expectedPath)
	if errors.Is(err, fs.ErrNotExist) {
		return types.VerdictNoExpected, "", nil
	}
	if err != nil {
		return types.VerdictFailure, "", fmt.Errorf("failed to read expected output: %w", err)
	}

	expected := string(data)
	if outcome.Output == expected {
		return types.VerdictMatch, expected, nil
	}
	return types.VerdictMismatch, expected, nil
}

// WriteBaseline stores output verbatim as the expected output at path,
// creating parent directories as needed.
func WriteBaseline(path string, output string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create baseline directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(output), BaselineFileMode); err != nil {
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	return nil
}
