package checker

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventkit/aoc-checker/flags"
	"github.com/adventkit/aoc-checker/types"
)

// syncBuffer guards the output written by the watch goroutine
type syncBuffer struct {
	mu sync.Mutex
	b  strings.Builder
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestWatchService(t *testing.T) {
	env := newTestEnv(t, flags.BaselineReject)
	out := &syncBuffer{}
	env.config.Stdout = out

	env.solution(day1Py, lineCount)
	env.input(day1Part1, types.InputExample, "a\n")
	env.expected(day1Part1, types.InputExample, "2")

	args := CheckArgs{Day: 1, Year: 2024, Runtime: types.RuntimePython, Part: types.Part1, Input: types.InputExample}
	svc, err := NewWatchService(env.checker, args)
	require.NoError(t, err)
	assert.True(t, svc.Stopped())

	require.NoError(t, svc.Start(context.Background()))
	assert.False(t, svc.Stopped())

	// The first check runs immediately and mismatches
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "❌ Output: 1")
	}, 5*time.Second, 20*time.Millisecond)

	// Editing the input re-runs the check
	env.input(day1Part1, types.InputExample, "a\nb\n")
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "✅ Output:   2")
	}, 5*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, svc.Stop(ctx))
	assert.True(t, svc.Stopped())
	assert.NoError(t, svc.Stop(ctx), "stopping twice is a no-op")
}

func TestNewWatchServiceErrors(t *testing.T) {
	env := newTestEnv(t, flags.BaselineReject)
	args := CheckArgs{Day: 1, Year: 2024, Runtime: types.RuntimeDeno, Part: types.Part1, Input: types.InputExample}

	_, err := NewWatchService(env.checker, args)
	require.Error(t, err)
	assert.True(t, IsRuntimeError(err), "runtime without a registered definition")

	args.Runtime = types.RuntimePython
	_, err = NewWatchService(env.checker, args)
	require.Error(t, err)
	assert.True(t, IsRuntimeError(err), "missing solution and io directories")
}
