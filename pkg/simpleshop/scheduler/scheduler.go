// Package scheduler runs snapshot exports of shop views on cron schedules.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/tendant/simple-shop/pkg/simpleshop"
)

// DefaultSpec takes snapshots nightly at 02:00.
const DefaultSpec = "0 2 * * *"

// Exporter is the part of simpleshop.Service the scheduler needs.
type Exporter interface {
	Export(ctx context.Context, req simpleshop.ExportRequest) (*simpleshop.ExportResult, error)
}

// Job is one scheduled export. Spec is a standard five-field cron expression
// and may carry a CRON_TZ= prefix.
type Job struct {
	Name    string
	Spec    string
	Request simpleshop.ExportRequest
}

// Scheduler runs export jobs on their cron schedules
type Scheduler struct {
	cron     *cron.Cron
	exporter Exporter
	logger   *slog.Logger
	jobs     []Job

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	running bool
}

// New registers jobs with a cron scheduler. It fails on an invalid spec.
func New(exporter Exporter, logger *slog.Logger, jobs ...Job) (*Scheduler, error) {
	if exporter == nil {
		return nil, errors.New("scheduler: exporter is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:     cron.New(),
		exporter: exporter,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}

	for _, job := range jobs {
		if job.Spec == "" {
			job.Spec = DefaultSpec
		}
		if job.Name == "" {
			job.Name = fmt.Sprintf("%s-%s", job.Request.View, job.Request.Format)
		}
		job.Request.Snapshot = true

		if _, err := s.cron.AddFunc(job.Spec, func() { _ = s.run(s.ctx, job) }); err != nil {
			cancel()
			return nil, fmt.Errorf("scheduler: job %s: invalid spec %q: %w", job.Name, job.Spec, err)
		}
		s.jobs = append(s.jobs, job)
	}
	return s, nil
}

// Jobs returns the registered jobs.
func (s *Scheduler) Jobs() []Job {
	return append([]Job(nil), s.jobs...)
}

// Start begins running jobs in the background. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.logger.Info("starting export scheduler", "jobs", len(s.jobs))
	s.cron.Start()
}

// Stop stops scheduling new runs and waits for running jobs to finish or ctx
// to expire, whichever comes first. Jobs still running when ctx expires are
// cancelled.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.cancel()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("stopping export scheduler")
	done := s.cron.Stop()
	defer s.cancel()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow runs every job once, in order. Failures are logged and returned
// together; one failing job does not stop the others.
func (s *Scheduler) RunNow(ctx context.Context) error {
	var errs []error
	for _, job := range s.jobs {
		if err := s.run(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	result, err := s.exporter.Export(ctx, job.Request)
	if err != nil {
		s.logger.Error("scheduled export failed", "job", job.Name, "view", job.Request.View, "error", err)
		return err
	}
	s.logger.Info("scheduled export stored", "job", job.Name, "view", job.Request.View, "key", result.Key, "rows", result.Rows)
	return nil
}
