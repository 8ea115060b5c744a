// Package scheduler runs the crawl, snapshot rebuild and evaluation jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/prediction"
	"github.com/yourusername/champ-predictor/internal/service"
)

// Crawler ingests new matches starting from seed players
type Crawler interface {
	Crawl(ctx context.Context, seeds []string, maxPlayers int) (*service.IngestionMetrics, error)
}

// SnapshotBuilder rebuilds the champion stats snapshot
type SnapshotBuilder interface {
	Build(ctx context.Context) (*models.ChampionStatsSnapshot, error)
}

// Evaluator scores the latest snapshot against its hold-out matches
type Evaluator interface {
	Evaluate(ctx context.Context, rules []prediction.Rule) (*service.EvaluationRun, error)
}

// Job is one unit of scheduled work
type Job func(ctx context.Context) error

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron            *cron.Cron
	logger          *logrus.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobs            map[string]cron.EntryID
	funcs           map[string]func()
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler. Overlapping runs of the same job are skipped.
func NewScheduler(logger *logrus.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger:          logger.WithField("component", "scheduler"),
		jobs:            make(map[string]cron.EntryID),
		funcs:           make(map[string]func()),
		gracefulTimeout: 30 * time.Second,
	}
}

// Schedule registers a named job. An empty expression leaves the job disabled.
func (s *Scheduler) Schedule(name, cronExpression string, timeout time.Duration, job Job) error {
	if cronExpression == "" {
		s.logger.WithField("job", name).Info("Job disabled, no cron expression")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q is already scheduled", name)
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		entry := s.logger.WithField("job", name)
		entry.Info("Scheduled job starting")

		if err := job(ctx); err != nil {
			entry.WithError(err).Error("Scheduled job failed")
			return
		}
		entry.WithField("duration", time.Since(start).String()).Info("Scheduled job completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	s.funcs[name] = jobFunc
	s.logger.WithFields(logrus.Fields{
		"job":  name,
		"cron": cronExpression,
	}).Info("Scheduled job")

	return nil
}

// ScheduleCrawl schedules match ingestion from the seed players
func (s *Scheduler) ScheduleCrawl(cronExpression string, crawler Crawler, seeds []string, maxPlayers int) error {
	return s.Schedule("crawl", cronExpression, 2*time.Hour, func(ctx context.Context) error {
		m, err := crawler.Crawl(ctx, seeds, maxPlayers)
		if err != nil {
			return err
		}
		s.logger.Infof("Crawl metrics: %s", m)
		return nil
	})
}

// ScheduleRebuild schedules snapshot rebuilds
func (s *Scheduler) ScheduleRebuild(cronExpression string, builder SnapshotBuilder) error {
	return s.Schedule("rebuild", cronExpression, 30*time.Minute, func(ctx context.Context) error {
		_, err := builder.Build(ctx)
		return err
	})
}

// ScheduleEvaluation schedules evaluation of the latest snapshot
func (s *Scheduler) ScheduleEvaluation(cronExpression string, evaluator Evaluator, rules []prediction.Rule) error {
	return s.Schedule("evaluate", cronExpression, 30*time.Minute, func(ctx context.Context) error {
		_, err := evaluator.Evaluate(ctx, rules)
		return err
	})
}

// RunNow runs a scheduled job synchronously, outside its schedule
func (s *Scheduler) RunNow(name string) error {
	s.mu.RLock()
	fn, ok := s.funcs[name]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job %q is not scheduled", name)
	}
	fn()
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Infof("Scheduler started with %d jobs", len(s.jobs))

	return nil
}

// Stop waits for running jobs to finish, up to the graceful timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	s.isRunning = false

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler stop timed out after %v", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nextRun := time.Time{}
	if !s.isRunning {
		return nextRun
	}

	for _, id := range s.jobs {
		entry := s.cron.Entry(id)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}

	return nextRun
}

// Jobs returns the names of the scheduled jobs
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}
