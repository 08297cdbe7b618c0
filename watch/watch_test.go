package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	noop := func(context.Context) {}

	_, err := New(Config{Dirs: []string{dir}})
	assert.ErrorContains(t, err, "OnChange is required")

	_, err = New(Config{OnChange: noop})
	assert.ErrorContains(t, err, "nothing to watch")

	_, err = New(Config{Dirs: []string{filepath.Join(dir, "missing")}, OnChange: noop})
	assert.ErrorContains(t, err, "failed to watch")
}

func TestRelevant(t *testing.T) {
	root := t.TempDir()
	solDir := filepath.Join(root, "solutions")
	ioDir := filepath.Join(root, "io")
	require.NoError(t, os.MkdirAll(solDir, 0755))
	require.NoError(t, os.MkdirAll(ioDir, 0755))
	solution := filepath.Join(solDir, "part1.ts")

	w, err := New(Config{
		Files:    []string{solution},
		Dirs:     []string{ioDir},
		OnChange: func(context.Context) {},
		Log:      log.NewLogger(log.DiscardHandler()),
	})
	require.NoError(t, err)
	defer w.watcher.Close()

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: solution, Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: solution, Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: solution, Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: filepath.Join(solDir, "part2.ts"), Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: filepath.Join(ioDir, "example.part1.input"), Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: filepath.Join(ioDir, "nested", "x"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.relevant(tt.event), tt.event.String())
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "part1.ts")
	require.NoError(t, os.WriteFile(file, []byte("v1"), 0644))

	calls := make(chan struct{}, 10)
	w, err := New(Config{
		Files:    []string{file},
		Debounce: 50 * time.Millisecond,
		OnChange: func(context.Context) { calls <- struct{}{} },
		Log:      log.NewLogger(log.DiscardHandler()),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitCall := func() {
		t.Helper()
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatal("OnChange was not called")
		}
	}

	waitCall() // initial run

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("v2"), 0644))
	}
	waitCall()

	// Drain calls from writes that straddled a debounce window
	time.Sleep(200 * time.Millisecond)
	for len(calls) > 0 {
		<-calls
	}

	// Unrelated files do not trigger a run
	require.NoError(t, os.WriteFile(filepath.Join(dir, "part2.ts"), []byte("x"), 0644))
	select {
	case <-calls:
		t.Fatal("unexpected OnChange call")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}
