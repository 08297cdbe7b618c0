package runner

import "time"

// Execution constants
const (
	// DefaultStderrTailBytes bounds how much of a failing solution's stderr is
	// attached to its error
	DefaultStderrTailBytes = 16 * 1024

	// MaxInputLineBytes is the longest input line that can be piped to a solution
	MaxInputLineBytes = 16 * 1024 * 1024

	// DefaultWaitDelay bounds how long a killed solution's output pipes are
	// drained after its process exits
	DefaultWaitDelay = 2 * time.Second

	// BaselineFileMode is the permission of created expected-output files
	BaselineFileMode = 0o644
)
