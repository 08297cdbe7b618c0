// Package runner executes solution files and checks their answers.
//
// The main components are:
//   - Executor: spawns the interpreter for one solution, pipes the input file
//     into its stdin line by line and captures its stdout
//   - Compare: checks captured output against the expected baseline file
//   - BaselineDecider: decides whether a missing baseline is created from the
//     captured output
//   - Runner: orchestrates a sequential batch, emitting one report per
//     solution, runtime and input variant and accumulating the failure tally
//
// Execution is strictly sequential. No timeout is applied unless one is
// configured, so a solution that never exits blocks the batch.
package runner
