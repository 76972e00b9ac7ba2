package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// PendingExpirer declines pending rows last touched before a cutoff.
type PendingExpirer interface {
	ExpirePending(ctx context.Context, pendingSince time.Time) (int64, error)
}

// ExpiryJob declines connections and mentorship requests left pending longer than the TTL.
type ExpiryJob struct {
	ttl         time.Duration
	connections PendingExpirer
	requests    PendingExpirer
	logger      zerolog.Logger
	now         func() time.Time
}

// NewExpiryJob creates a new ExpiryJob
func NewExpiryJob(ttl time.Duration, connections, requests PendingExpirer, logger zerolog.Logger) *ExpiryJob {
	return &ExpiryJob{
		ttl:         ttl,
		connections: connections,
		requests:    requests,
		logger:      logger,
		now:         time.Now,
	}
}

// Run performs one sweep and returns how many rows of each kind were declined
func (j *ExpiryJob) Run(ctx context.Context) (connections, requests int64, err error) {
	if j.ttl <= 0 {
		return 0, 0, nil
	}
	cutoff := j.now().Add(-j.ttl)

	connections, err = j.connections.ExpirePending(ctx, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("expire connections: %w", err)
	}
	requests, err = j.requests.ExpirePending(ctx, cutoff)
	if err != nil {
		return connections, 0, fmt.Errorf("expire mentorship requests: %w", err)
	}

	if connections > 0 || requests > 0 {
		j.logger.Info().
			Int64("connections", connections).
			Int64("mentorshipRequests", requests).
			Time("cutoff", cutoff).
			Msg("Expired pending relationships")
	}
	return connections, requests, nil
}

// Scheduler runs the expiry sweep on a cron schedule
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewScheduler registers job under a standard 5-field cron spec
func NewScheduler(schedule string, job *ExpiryJob, logger zerolog.Logger) (*Scheduler, error) {
	cronLogger := cron.PrintfLogger(&logger)
	c := cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, _, err := job.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("Pending expiry sweep failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid expiry schedule %q: %w", schedule, err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start begins running scheduled sweeps in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Int("entries", len(s.cron.Entries())).Msg("Expiry scheduler started")
}

// Stop halts the schedule and waits for a running sweep to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("Expiry scheduler stop timed out")
	}
}
