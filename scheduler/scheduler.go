package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/mww/dreamsquad/model"
)

// Jobs is the work the scheduler runs. controller.C satisfies it.
type Jobs interface {
	SyncPlayers(ctx context.Context) (*model.SyncResult, error)
	ApplyScoreUpdate(ctx context.Context) (*model.ScoreUpdate, error)
}

type Scheduler struct {
	s             gocron.Scheduler
	jobs          Jobs
	syncInterval  time.Duration
	scoreInterval time.Duration
	timeout       time.Duration
}

// New creates a scheduler that runs the player sync every syncInterval and the
// score update every scoreInterval. A zero interval leaves that job out.
func New(jobs Jobs, syncInterval, scoreInterval time.Duration) (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:             s,
		jobs:          jobs,
		syncInterval:  syncInterval,
		scoreInterval: scoreInterval,
		timeout:       5 * time.Minute,
	}, nil
}

func (s *Scheduler) Start() error {
	if s.syncInterval > 0 {
		// The catalog is refreshed once at startup and then on the interval.
		_, err := s.s.NewJob(
			gocron.DurationJob(s.syncInterval),
			gocron.NewTask(s.syncPlayers),
			gocron.WithName("player-sync"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return fmt.Errorf("failed to create player sync job: %w", err)
		}
	}

	if s.scoreInterval > 0 {
		_, err := s.s.NewJob(
			gocron.DurationJob(s.scoreInterval),
			gocron.NewTask(s.applyScores),
			gocron.WithName("score-update"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create score update job: %w", err)
		}
	}

	s.s.Start()
	slog.Info("scheduler started", "sync_interval", s.syncInterval, "score_interval", s.scoreInterval)
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) syncPlayers() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.jobs.SyncPlayers(ctx); err != nil {
		slog.Error("Failed to sync players", "error", err)
	}
}

func (s *Scheduler) applyScores() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.jobs.ApplyScoreUpdate(ctx)
	if err != nil {
		slog.Error("Failed to apply score update", "error", err)
		return
	}
	slog.Info("score update applied", "matchday", res.Matchday, "players", res.PlayersUpdated)
}
