package checker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ethereum-optimism/optimism/op-service/cliapp"

	"github.com/adventkit/aoc-checker/service"
	"github.com/adventkit/aoc-checker/types"
	"github.com/adventkit/aoc-checker/watch"
)

// WatchService implements the cliapp.Lifecycle interface.
var _ cliapp.Lifecycle = (*WatchService)(nil)

// WatchService re-runs a single check whenever the solution file or the
// puzzle's io directory changes
type WatchService struct {
	checker *Checker
	args    CheckArgs
	watcher *watch.Watcher
	service *service.Service

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	err     error
}

// NewWatchService creates the watch service. The solution's directory and the
// puzzle's io directory must exist.
func NewWatchService(c *Checker, args CheckArgs) (*WatchService, error) {
	lang, err := c.registry.HomeLanguage(args.Runtime)
	if err != nil {
		return nil, NewRuntimeError(err)
	}
	solution := types.Solution{
		PuzzleID: types.PuzzleID{Year: args.Year, Day: args.Day, Part: args.Part},
		Language: lang,
	}

	s := &WatchService{
		checker: c,
		args:    args,
		service: service.New(service.Config{
			HealthzAddr: c.config.HealthzAddr,
			MetricsAddr: c.config.MetricsAddr,
			Log:         c.log,
		}),
	}
	s.watcher, err = watch.New(watch.Config{
		Files:    []string{c.config.Layout.SolutionPath(solution)},
		Dirs:     []string{c.config.Layout.DayDir(args.Year, args.Day)},
		OnChange: s.check,
		Log:      c.log,
	})
	if err != nil {
		return nil, NewRuntimeError(fmt.Errorf("failed to watch %s: %w", solution, err))
	}
	return s, nil
}

// Start implements the cliapp.Lifecycle interface.
func (s *WatchService) Start(ctx context.Context) error {
	// Start's ctx only covers startup; the watch loop lives until Stop.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.running.Store(true)

	s.service.Start()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.watcher.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			s.checker.log.Error("Watcher stopped", "error", err)
			s.err = err
		}
	}()
	s.checker.log.Info("Watching for changes", "day", s.args.Day, "year", s.args.Year,
		"runtime", s.args.Runtime, "part", s.args.Part, "input", s.args.Input)
	return nil
}

func (s *WatchService) check(ctx context.Context) {
	_, err := s.checker.CheckOne(ctx, s.args)
	switch {
	case err == nil, IsFailureError(err):
		// the outcome was already printed
	case errors.Is(err, context.Canceled):
	default:
		s.checker.log.Error("Check failed", "error", err)
	}
}

// Stop implements the cliapp.Lifecycle interface.
func (s *WatchService) Stop(ctx context.Context) error {
	if !s.running.Swap(false) {
		return nil
	}
	s.checker.log.Info("Stopping watch")
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return errors.Join(s.err, s.service.Shutdown(ctx))
}

// Stopped implements the cliapp.Lifecycle interface.
func (s *WatchService) Stopped() bool {
	return !s.running.Load()
}
