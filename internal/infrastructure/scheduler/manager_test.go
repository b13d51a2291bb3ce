package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetflow/assetflow/internal/shared/logger"
)

type countingJob struct {
	calls atomic.Int32
	count int64
	err   error
}

func (j *countingJob) Execute(ctx context.Context) (int64, error) {
	j.calls.Add(1)
	return j.count, j.err
}

func TestSchedulerManager_RegistersNamedJobs(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, m.RegisterInvitationExpiryJob(&countingJob{}, time.Hour))
	require.NoError(t, m.RegisterOrphanListCleanupJob(&countingJob{}, time.Hour))

	names := make([]string, 0, 2)
	for _, j := range m.Jobs() {
		names = append(names, j.Name())
	}
	assert.ElementsMatch(t, []string{"invitation-expiry", "orphan-list-cleanup"}, names)
}

func TestSchedulerManager_RunsJobImmediatelyOnStart(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	expiry := &countingJob{count: 3}
	cleanup := &countingJob{err: errors.New("db down")}
	require.NoError(t, m.RegisterInvitationExpiryJob(expiry, time.Hour))
	require.NoError(t, m.RegisterOrphanListCleanupJob(cleanup, time.Hour))

	m.Start()
	assert.True(t, m.IsStarted())

	assert.Eventually(t, func() bool {
		return expiry.calls.Load() == 1 && cleanup.calls.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
}

func TestSchedulerManager_StopBeforeStart(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	assert.NoError(t, m.Stop())
}
