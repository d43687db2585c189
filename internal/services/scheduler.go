package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"photowalk/internal/repositories"
)

// SessionSweeper drops expired walk sessions.
type SessionSweeper interface {
	Sweep() int
}

// Scheduler runs the background jobs: image backfill and session expiry.
type Scheduler struct {
	sched     gocron.Scheduler
	reconcile ReconcileServiceInterface
	sessions  SessionSweeper
	interval  time.Duration
	started   bool
	log       *zap.Logger
}

func NewScheduler(
	reconcile ReconcileServiceInterface,
	sessions SessionSweeper,
	interval time.Duration,
	log *zap.Logger,
) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		sched:     sched,
		reconcile: reconcile,
		sessions:  sessions,
		interval:  interval,
		log:       log,
	}, nil
}

func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("Background jobs disabled")
		return nil
	}

	_, err := s.sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.runReconcile),
		gocron.WithName("photo-image-backfill"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	_, err = s.sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.runSweep),
		gocron.WithName("session-expiry"),
	)
	if err != nil {
		return err
	}

	s.sched.Start()
	s.started = true
	s.log.Info("Background jobs started", zap.Duration("interval", s.interval))
	return nil
}

func (s *Scheduler) Stop() error {
	if !s.started {
		return nil
	}
	return s.sched.Shutdown()
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	// without a database there is nothing to backfill
	if _, err := s.reconcile.ReconcileOnce(ctx); err != nil && !errors.Is(err, repositories.ErrNoDatabase) {
		s.log.Warn("Image backfill failed", zap.Error(err))
	}
}

func (s *Scheduler) runSweep() {
	if n := s.sessions.Sweep(); n > 0 {
		s.log.Info("Expired walk sessions dropped", zap.Int("count", n))
	}
}
