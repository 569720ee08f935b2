package cleanup

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Scheduler runs the sweep once a day at midnight UTC.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *zerolog.Logger
}

func NewScheduler(sweeper *Sweeper, logger *zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			if err := sweeper.Sweep(ctx); err != nil {
				logger.Error().Err(err).Msg("cleanup sweep failed")
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		scheduler: s,
		logger:    logger,
	}, nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.logger.Info().Msg("cleanup scheduler started")
}

func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}
