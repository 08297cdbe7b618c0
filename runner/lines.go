package runner

import (
	"bufio"
	"fmt"
	"io"
)

// PipeLines copies src to dst one line at a time. Lines are split on "\n" or
// "\r\n" and each is written terminated by "\n". Empty lines are kept when a
// non-empty line follows them; empty trailing fragments are dropped.
func PipeLines(dst io.Writer, src io.Reader) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxInputLineBytes)

	w := bufio.NewWriter(dst)
	pendingEmpty := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			pendingEmpty++
			continue
		}
		for ; pendingEmpty > 0; pendingEmpty-- {
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return w.Flush()
}
