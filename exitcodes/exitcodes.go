// Package exitcodes defines the standard exit codes used by aoc-checker.
package exitcodes

// Exit code constants used by aoc-checker
//
// * Success (0): every attempted run matched its baseline or had none yet
// * Failure (1): one or more runs failed or mismatched, or arguments were malformed
// * RuntimeErr (2): the checker itself could not run (bad config, discovery errors)
const (
	Success    = 0
	Failure    = 1
	RuntimeErr = 2
)
