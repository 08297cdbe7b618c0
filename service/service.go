// Package service runs the optional HTTP endpoints of long running commands.
package service

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/ethereum/go-ethereum/log"

	"github.com/adventkit/aoc-checker/metrics"
)

// Config selects the listen addresses. An empty address disables the server.
type Config struct {
	HealthzAddr string
	MetricsAddr string
	Log         log.Logger
}

type Service struct {
	Healthz *HealthzServer
	Metrics *MetricsServer

	log log.Logger
	wg  sync.WaitGroup
}

func New(cfg Config) *Service {
	if cfg.Log == nil {
		cfg.Log = log.New()
	}
	s := &Service{log: cfg.Log}
	if cfg.HealthzAddr != "" {
		s.Healthz = NewHealthzServer(cfg.HealthzAddr)
	}
	if cfg.MetricsAddr != "" {
		s.Metrics = NewMetricsServer(cfg.MetricsAddr)
	}
	return s
}

// Enabled reports whether any server is configured
func (s *Service) Enabled() bool {
	return s.Healthz != nil || s.Metrics != nil
}

// Start launches the configured servers in the background. Listen errors are
// logged and counted; they never stop the command.
func (s *Service) Start() {
	if !s.Enabled() {
		return
	}
	s.log.Info("service starting")
	if s.Healthz != nil {
		s.serve("healthz", s.Healthz.server.Addr, s.Healthz.Start)
	}
	if s.Metrics != nil {
		s.serve("metrics", s.Metrics.server.Addr, s.Metrics.Start)
	}
}

func (s *Service) serve(name, addr string, start func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.log.Info("starting "+name+" server", "addr", addr)
		if err := start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error starting "+name+" server", "err", err)
			metrics.RecordErrorDetails("error starting "+name+" server", err)
		}
	}()
}

// Shutdown stops the servers and waits for them to exit
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	s.log.Info("service shutting down")
	var errs []error
	if s.Healthz != nil {
		errs = append(errs, s.Healthz.Shutdown(ctx))
	}
	if s.Metrics != nil {
		errs = append(errs, s.Metrics.Shutdown(ctx))
	}
	s.wg.Wait()
	s.log.Info("service stopped")
	return errors.Join(errs...)
}
