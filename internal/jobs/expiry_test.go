package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expirerStub struct {
	cutoff time.Time
	calls  int
	n      int64
	err    error
}

func (e *expirerStub) ExpirePending(_ context.Context, pendingSince time.Time) (int64, error) {
	e.calls++
	e.cutoff = pendingSince
	return e.n, e.err
}

func TestExpiryJobUsesTTLCutoff(t *testing.T) {
	conns := &expirerStub{n: 2}
	reqs := &expirerStub{n: 1}
	job := NewExpiryJob(48*time.Hour, conns, reqs, zerolog.Nop())
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	c, r, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), c)
	assert.Equal(t, int64(1), r)
	assert.Equal(t, now.Add(-48*time.Hour), conns.cutoff)
	assert.Equal(t, conns.cutoff, reqs.cutoff)
}

func TestExpiryJobDisabled(t *testing.T) {
	conns := &expirerStub{}
	reqs := &expirerStub{}
	job := NewExpiryJob(0, conns, reqs, zerolog.Nop())

	_, _, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, conns.calls)
	assert.Zero(t, reqs.calls)
}

func TestExpiryJobStopsOnConnectionError(t *testing.T) {
	boom := errors.New("db down")
	conns := &expirerStub{err: boom}
	reqs := &expirerStub{}
	job := NewExpiryJob(time.Hour, conns, reqs, zerolog.Nop())

	_, _, err := job.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, reqs.calls)
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	job := NewExpiryJob(time.Hour, &expirerStub{}, &expirerStub{}, zerolog.Nop())

	_, err := NewScheduler("not a schedule", job, zerolog.Nop())
	assert.Error(t, err)

	s, err := NewScheduler("*/15 * * * *", job, zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
